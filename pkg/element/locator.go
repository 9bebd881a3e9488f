package element

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/dastan92/computer-use-agents/internal/logger"
	"github.com/dastan92/computer-use-agents/pkg/vision"
)

// State 单次定位请求的状态
// 状态流转: Idle -> Matching -> {Matched, NeedsLearning}
//   -> (NeedsLearning 时) Estimating -> {Learned, Failed} -> Done
type State int

const (
	StateIdle State = iota
	StateMatching
	StateMatched
	StateNeedsLearning
	StateEstimating
	StateLearned
	StateFailed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMatching:
		return "matching"
	case StateMatched:
		return "matched"
	case StateNeedsLearning:
		return "needs_learning"
	case StateEstimating:
		return "estimating"
	case StateLearned:
		return "learned"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// TemplateMatcher 在当前屏幕上搜索模板图像
// 未找到足够置信度的匹配时返回 nil, nil
type TemplateMatcher interface {
	FindOnScreen(templatePath string, threshold float64) (*Point, error)
}

// Analyzer 感知端口：图像加指令进，自由文本出
type Analyzer interface {
	AnalyzeScreenshot(encodedImage, prompt string) (string, error)
}

// Clicker 定位流程使用的输入能力
type Clicker interface {
	Click(x, y int) error
}

// DefaultMatchThreshold 模板匹配的默认最低置信度
const DefaultMatchThreshold = 0.8

// Locator 元素定位器
// 优先用缓存模板做本地匹配，缓存未命中时调用视觉模型学习新模板
type Locator struct {
	store    *Store
	matcher  TemplateMatcher
	analyzer Analyzer
	clicker  Clicker

	threshold float64
	stateCb   func(State)
}

// LocatorOption 定位器配置选项
type LocatorOption func(*Locator)

// WithMatchThreshold 设置模板匹配的最低置信度
func WithMatchThreshold(threshold float64) LocatorOption {
	return func(l *Locator) {
		l.threshold = threshold
	}
}

// WithStateCallback 设置状态流转回调（用于调试和测试观察）
func WithStateCallback(cb func(State)) LocatorOption {
	return func(l *Locator) {
		l.stateCb = cb
	}
}

// NewLocator 创建元素定位器
func NewLocator(store *Store, matcher TemplateMatcher, analyzer Analyzer, clicker Clicker, opts ...LocatorOption) *Locator {
	l := &Locator{
		store:     store,
		matcher:   matcher,
		analyzer:  analyzer,
		clicker:   clicker,
		threshold: DefaultMatchThreshold,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Locator) setState(s State) {
	if l.stateCb != nil {
		l.stateCb(s)
	}
}

// LocateAndAct 定位元素并点击
// liveScreen 为当前全屏截图，encoded 为其 Base64 data URL 表示。
// 所有失败都收敛为 success=false，不向调用方抛出异常；
// 只有缓存损坏在仓库构建阶段提前暴露，不会走到这里。
func (l *Locator) LocateAndAct(description string, liveScreen image.Image, encoded string) (bool, *Point) {
	startTime := time.Now()
	bounds := liveScreen.Bounds()
	screenW, screenH := bounds.Dx(), bounds.Dy()

	l.setState(StateIdle)
	l.setState(StateMatching)

	// 第一阶段：缓存模板匹配
	if pt := l.matchCached(description); pt != nil {
		l.setState(StateMatched)
		if !l.click(description, *pt) {
			return l.fail(description, startTime, "点击失败")
		}
		l.setState(StateDone)
		logger.LogEvent("LOCATE", true, elapsedMs(startTime),
			fmt.Sprintf("%s @ (%d, %d) 缓存命中", description, pt.X, pt.Y))
		return true, pt
	}

	// 缓存未命中是常态，不是错误
	l.setState(StateNeedsLearning)
	l.setState(StateEstimating)

	// 第二阶段：视觉模型估计位置并学习模板
	geo, ok := l.estimate(description, encoded, screenW, screenH)
	if !ok {
		return l.fail(description, startTime, "无法解析模型返回的坐标")
	}

	clamped := geo.ClampTo(screenW, screenH)
	if clamped.Empty() {
		return l.fail(description, startTime, "估计区域完全超出屏幕范围")
	}

	template := cropTemplate(liveScreen, clamped)
	if _, err := l.store.Put(description, template, clamped); err != nil {
		logger.Error("保存元素模板失败: %v", err)
		return l.fail(description, startTime, "模板写入失败")
	}
	l.setState(StateLearned)

	center := clamped.Center()
	if !l.click(description, center) {
		return l.fail(description, startTime, "点击失败")
	}
	l.setState(StateDone)
	logger.LogEvent("LOCATE", true, elapsedMs(startTime),
		fmt.Sprintf("%s @ (%d, %d) 新学习", description, center.X, center.Y))
	return true, &center
}

// matchCached 尝试用缓存的模板在当前屏幕上匹配
// 任何一步失败都视为未命中，返回 nil
func (l *Locator) matchCached(description string) *Point {
	record, ok := l.store.Get(description)
	if !ok {
		logger.Debug("元素 %q 不在缓存中", description)
		return nil
	}

	// 模板文件缺失时记录降级为未命中，而不是报错
	if _, err := os.Stat(record.Filepath); err != nil {
		logger.Warn("元素 %q 的模板文件缺失: %s", description, record.Filepath)
		return nil
	}

	pt, err := l.matcher.FindOnScreen(record.Filepath, l.threshold)
	if err != nil {
		logger.Warn("模板匹配出错，转为重新学习: %v", err)
		return nil
	}
	if pt == nil {
		logger.Debug("元素 %q 的模板在当前屏幕上未匹配", description)
		return nil
	}
	return pt
}

// estimate 调用感知端口估计元素位置
func (l *Locator) estimate(description, encoded string, screenW, screenH int) (Geometry, bool) {
	prompt := vision.ElementLocationPrompt(description, screenW, screenH)

	response, err := l.analyzer.AnalyzeScreenshot(encoded, prompt)
	if err != nil {
		// 感知失败在边界处转为文本结果，绝不让定位器崩溃
		logger.Error("感知调用失败: %v", err)
		return Geometry{}, false
	}
	logger.Debug("元素定位响应:\n%s", response)

	geo, err := ParseCoordinates(response, screenW, screenH)
	if err != nil || geo == nil {
		return Geometry{}, false
	}
	return *geo, true
}

func (l *Locator) click(description string, pt Point) bool {
	if err := l.clicker.Click(pt.X, pt.Y); err != nil {
		logger.Error("点击元素 %q 失败: %v", description, err)
		return false
	}
	return true
}

// fail 进入失败终态
func (l *Locator) fail(description string, startTime time.Time, reason string) (bool, *Point) {
	l.setState(StateFailed)
	l.setState(StateDone)
	logger.LogEvent("LOCATE", false, elapsedMs(startTime),
		fmt.Sprintf("%s: %s", description, reason))
	return false, nil
}

// cropTemplate 从截屏中裁剪模板图像
func cropTemplate(img image.Image, g Geometry) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	srcOrigin := img.Bounds().Min.Add(image.Pt(g.Left, g.Top))
	draw.Draw(out, out.Bounds(), img, srcOrigin, draw.Src)
	return out
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
