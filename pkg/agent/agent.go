// Package agent 将截屏、感知、定位和输入组合为可交互的桌面代理
package agent

import (
	"fmt"
	"image"
	"time"

	"github.com/dastan92/computer-use-agents/internal/logger"
	"github.com/dastan92/computer-use-agents/pkg/config"
	"github.com/dastan92/computer-use-agents/pkg/element"
	"github.com/dastan92/computer-use-agents/pkg/input"
	"github.com/dastan92/computer-use-agents/pkg/screen"
	"github.com/dastan92/computer-use-agents/pkg/vision"
)

// Agent 桌面自动化代理
// 单线程阻塞式流水线：截屏 -> 感知/定位 -> 输入，一次只执行一个动作
type Agent struct {
	cfg      *config.AgentConfig
	analyzer *vision.Client
	driver   *input.Driver
	store    *element.Store
	locator  *element.Locator

	actionCount int
	startedAt   time.Time
}

// New 创建桌面代理
// 元素缓存损坏时在这里直接失败，不会静默丢数据
func New(cfg *config.AgentConfig) (*Agent, error) {
	store, err := element.NewStore(cfg.ElementsDir)
	if err != nil {
		return nil, fmt.Errorf("初始化元素仓库失败: %w", err)
	}

	analyzer := vision.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.MaxTokens)

	driver := input.NewDriver(input.Options{
		PauseBetweenActions: time.Duration(cfg.PauseBetweenActions * float64(time.Second)),
		AbortOnCorner:       cfg.AbortOnCorner,
	})

	locator := element.NewLocator(store, &screenMatcher{}, analyzer, driver,
		element.WithMatchThreshold(cfg.MatchThreshold),
		element.WithStateCallback(func(s element.State) {
			logger.Debug("定位状态: %s", s)
		}),
	)

	return &Agent{
		cfg:       cfg,
		analyzer:  analyzer,
		driver:    driver,
		store:     store,
		locator:   locator,
		startedAt: time.Now(),
	}, nil
}

// screenMatcher 生产环境的模板匹配器
// 每次搜索都截取一张新的全屏图像
type screenMatcher struct{}

func (screenMatcher) FindOnScreen(templatePath string, threshold float64) (*element.Point, error) {
	result, err := screen.FindTemplate(templatePath, threshold)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &element.Point{X: result.Result.X, Y: result.Result.Y}, nil
}

// Observe 截取屏幕并让视觉模型描述当前画面
// 返回截图、Base64 编码和分析文本
func (a *Agent) Observe() (image.Image, string, string, error) {
	img, encoded, err := a.captureAndSave("")
	if err != nil {
		return nil, "", "", err
	}

	startTime := time.Now()
	analysis, err := a.analyzer.AnalyzeScreenshot(encoded, "")
	if err != nil {
		// 感知失败转为文本结果，调用方决定如何继续
		logger.LogEvent("VISION", false, sinceMs(startTime), err.Error())
		return img, encoded, fmt.Sprintf("分析截图失败: %v", err), nil
	}
	logger.LogEvent("VISION", true, sinceMs(startTime), "观察完成")

	return img, encoded, analysis, nil
}

// ObserveAndAct 截取屏幕并根据目标请求下一步动作建议
func (a *Agent) ObserveAndAct(goal string) (string, error) {
	_, encoded, err := a.captureAndSave("")
	if err != nil {
		return "", err
	}

	startTime := time.Now()
	suggestion, err := a.analyzer.SuggestAction(encoded, goal)
	if err != nil {
		logger.LogEvent("VISION", false, sinceMs(startTime), err.Error())
		return fmt.Sprintf("获取动作建议失败: %v", err), nil
	}
	logger.LogEvent("VISION", true, sinceMs(startTime), "动作建议完成")

	return suggestion, nil
}

// SmartClick 按自然语言描述定位并点击元素
// 已学习过的元素走本地模板匹配，否则调用视觉模型学习
func (a *Agent) SmartClick(description string) (bool, *element.Point) {
	img, encoded, err := a.captureAndSave("")
	if err != nil {
		logger.Error("截屏失败: %v", err)
		return false, nil
	}

	ok, pt := a.locator.LocateAndAct(description, img, encoded)
	if ok {
		a.afterAction()
		a.saveAnnotated(description, pt)
	}
	return ok, pt
}

// Click 在指定坐标点击
func (a *Agent) Click(x, y int) error {
	if err := a.driver.Click(x, y); err != nil {
		return err
	}
	a.afterAction()
	return nil
}

// TypeText 输入文字
func (a *Agent) TypeText(text string) error {
	if err := a.driver.TypeText(text); err != nil {
		return err
	}
	a.afterAction()
	return nil
}

// PressKey 按下单个按键
func (a *Agent) PressKey(key string) error {
	if err := a.driver.PressKey(key); err != nil {
		return err
	}
	a.afterAction()
	return nil
}

// HotKey 按下组合键
func (a *Agent) HotKey(keys ...string) error {
	if err := a.driver.HotKey(keys...); err != nil {
		return err
	}
	a.afterAction()
	return nil
}

// Scroll 滚动滚轮，amount 为正向上、为负向下
func (a *Agent) Scroll(amount int) error {
	if err := a.driver.Scroll(amount, -1, -1); err != nil {
		return err
	}
	a.afterAction()
	return nil
}

// MoveTo 移动鼠标
func (a *Agent) MoveTo(x, y int) error {
	return a.driver.MoveTo(x, y, 500*time.Millisecond)
}

// Wait 等待指定秒数
func (a *Agent) Wait(seconds float64) {
	a.driver.Wait(time.Duration(seconds * float64(time.Second)))
}

// LearnedElements 返回所有已学习元素的名称
func (a *Agent) LearnedElements() []string {
	return a.store.Names()
}

// ClearElements 清空元素缓存
func (a *Agent) ClearElements() error {
	return a.store.Clear()
}

// ActionCount 返回已执行的动作数量
func (a *Agent) ActionCount() int {
	return a.actionCount
}

// captureAndSave 截取全屏并按配置保存截图
func (a *Agent) captureAndSave(filename string) (image.Image, string, error) {
	img, encoded, err := screen.CaptureToBase64()
	if err != nil {
		return nil, "", err
	}

	if a.cfg.SaveScreenshots {
		if path, err := screen.SaveTimestamped(img, a.cfg.ScreenshotsDir, filename); err != nil {
			logger.Warn("保存截图失败: %v", err)
		} else {
			logger.Debug("截图已保存: %s", path)
		}
	}

	return img, encoded, nil
}

// afterAction 动作完成后的统一处理：计数并保存动作后截图
func (a *Agent) afterAction() {
	a.actionCount++

	if !a.cfg.SaveScreenshots {
		return
	}
	img, err := screen.Capture()
	if err != nil {
		logger.Warn("动作后截屏失败: %v", err)
		return
	}
	filename := fmt.Sprintf("action_%03d_after.png", a.actionCount)
	if _, err := screen.SaveTimestamped(img, a.cfg.ScreenshotsDir, filename); err != nil {
		logger.Warn("保存动作后截图失败: %v", err)
	}
}

// saveAnnotated 保存标注了元素区域的调试截图
func (a *Agent) saveAnnotated(description string, pt *element.Point) {
	if !a.cfg.SaveScreenshots || pt == nil {
		return
	}

	record, ok := a.store.Get(description)
	if !ok {
		return
	}

	img, err := screen.Capture()
	if err != nil {
		return
	}

	// 以点击点为中心，按模板尺寸画框
	w, h := record.Coords.Width, record.Coords.Height
	rect := image.Rect(pt.X-w/2, pt.Y-h/2, pt.X+w/2+w%2, pt.Y+h/2+h%2)
	annotated := screen.Annotate(img, rect, description)

	filename := fmt.Sprintf("action_%03d_match.png", a.actionCount)
	if _, err := screen.SaveTimestamped(annotated, a.cfg.ScreenshotsDir, filename); err != nil {
		logger.Warn("保存标注截图失败: %v", err)
	}
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
