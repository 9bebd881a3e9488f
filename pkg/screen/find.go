package screen

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/dastan92/computer-use-agents/pkg/vision/cv"
)

// FindTemplate 在当前屏幕上查找模板文件
// 每次调用都截取一张新的全屏图像再匹配
// 未找到足够置信度的匹配时返回 nil, nil
func FindTemplate(templatePath string, threshold float64) (*cv.MatchResult, error) {
	img, err := Capture()
	if err != nil {
		return nil, err
	}

	source, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("转换截屏图像失败: %w", err)
	}
	defer source.Close()

	return cv.FindTemplateInImage(source, templatePath, threshold)
}
