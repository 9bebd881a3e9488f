package cv

import (
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

const (
	// DefaultThreshold 默认匹配阈值
	DefaultThreshold = 0.8
	// MaxResultCount FindAllResults 返回的最大匹配数量
	MaxResultCount = 10
)

// TemplateMatching 模板匹配器
// 在源图像（截屏）中搜索模板图像，使用归一化相关系数法
type TemplateMatching struct {
	imSearch  gocv.Mat
	imSource  gocv.Mat
	threshold float64
	rgb       bool
}

// NewTemplateMatching 创建模板匹配器
// search 为模板图像，source 为被搜索的源图像
// rgb 为 true 时使用 RGB 三通道校验置信度
func NewTemplateMatching(search, source gocv.Mat, threshold float64, rgb bool) *TemplateMatching {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &TemplateMatching{
		imSearch:  search,
		imSource:  source,
		threshold: threshold,
		rgb:       rgb,
	}
}

// FindBestResult 查找最佳匹配结果
// 置信度低于阈值时返回 nil, nil（未找到不是错误）
func (t *TemplateMatching) FindBestResult() (*MatchResult, error) {
	startTime := time.Now()

	if err := checkSourceLargerThanSearch(t.imSource, t.imSearch); err != nil {
		return nil, err
	}

	result := t.matchResultMatrix()
	defer result.Close()

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	h, w := t.imSearch.Rows(), t.imSearch.Cols()
	confidence := t.confidenceAt(maxLoc, maxVal, w, h)
	middlePoint, rectangle := targetRectangle(maxLoc, w, h)

	if confidence < t.threshold {
		return nil, nil
	}

	return &MatchResult{
		Result:     middlePoint,
		Rectangle:  rectangle,
		Confidence: confidence,
		Time:       float64(time.Since(startTime).Milliseconds()),
	}, nil
}

// FindAllResults 查找所有置信度达标的匹配结果
func (t *TemplateMatching) FindAllResults() ([]*MatchResult, error) {
	startTime := time.Now()

	if err := checkSourceLargerThanSearch(t.imSource, t.imSearch); err != nil {
		return nil, err
	}

	result := t.matchResultMatrix()
	defer result.Close()

	h, w := t.imSearch.Rows(), t.imSearch.Cols()
	var results []*MatchResult

	for len(results) < MaxResultCount {
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

		confidence := t.confidenceAt(maxLoc, maxVal, w, h)
		if confidence < t.threshold {
			break
		}

		middlePoint, rectangle := targetRectangle(maxLoc, w, h)
		results = append(results, &MatchResult{
			Result:     middlePoint,
			Rectangle:  rectangle,
			Confidence: confidence,
			Time:       float64(time.Since(startTime).Milliseconds()),
		})

		// 屏蔽已匹配区域，继续找下一个
		gocv.Rectangle(&result,
			image.Rect(maxLoc.X-w/2, maxLoc.Y-h/2, maxLoc.X+w/2, maxLoc.Y+h/2),
			color.RGBA{0, 0, 0, 255}, -1)
	}

	return results, nil
}

// matchResultMatrix 计算模板匹配结果矩阵（灰度 TM_CCOEFF_NORMED）
func (t *TemplateMatching) matchResultMatrix() gocv.Mat {
	srcGray := ToGray(t.imSource)
	searchGray := ToGray(t.imSearch)
	defer srcGray.Close()
	defer searchGray.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, gocv.NewMat())

	return result
}

// confidenceAt 计算指定位置的匹配置信度
func (t *TemplateMatching) confidenceAt(maxLoc image.Point, maxVal float32, w, h int) float64 {
	if t.rgb {
		imgCrop := t.imSource.Region(image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+w, maxLoc.Y+h))
		defer imgCrop.Close()
		return CalRGBConfidence(imgCrop, t.imSearch)
	}
	return float64(maxVal)
}

// targetRectangle 根据左上角位置和模板尺寸计算中心点和四个角点
func targetRectangle(leftTopPos image.Point, w, h int) (Point, Rectangle) {
	xMin, yMin := leftTopPos.X, leftTopPos.Y

	middlePoint := Point{X: xMin + w/2, Y: yMin + h/2}

	rectangle := Rectangle{
		TopLeft:     Point{X: xMin, Y: yMin},
		BottomLeft:  Point{X: xMin, Y: yMin + h},
		BottomRight: Point{X: xMin + w, Y: yMin + h},
		TopRight:    Point{X: xMin + w, Y: yMin},
	}

	return middlePoint, rectangle
}

// checkSourceLargerThanSearch 检查源图像是否不小于模板图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}

// ImageSizeError 模板图像大于源图像时的错误
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return "模板图像尺寸大于源图像"
}

// FindTemplateInImage 在源图像中查找模板文件
// 便捷函数：读取模板文件后执行一次最佳匹配
func FindTemplateInImage(source gocv.Mat, templatePath string, threshold float64) (*MatchResult, error) {
	tmpl, err := ReadImage(templatePath)
	if err != nil {
		return nil, err
	}
	defer tmpl.Close()

	matcher := NewTemplateMatching(tmpl, source, threshold, false)
	return matcher.FindBestResult()
}
