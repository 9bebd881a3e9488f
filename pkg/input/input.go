// Package input 提供鼠标和键盘的合成输入操作
package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
)

// ErrAborted 鼠标移动到屏幕角落触发的紧急中止
var ErrAborted = errors.New("检测到鼠标位于屏幕角落，操作已中止")

// cornerSize 触发紧急中止的角落区域边长（像素）
const cornerSize = 5

// Options 输入驱动配置
type Options struct {
	// PauseBetweenActions 每个动作完成后的停顿，等待界面响应
	PauseBetweenActions time.Duration
	// AbortOnCorner 鼠标位于屏幕左上角时中止动作（紧急逃生开关）
	AbortOnCorner bool
}

// DefaultOptions 默认输入配置
func DefaultOptions() Options {
	return Options{
		PauseBetweenActions: 500 * time.Millisecond,
		AbortOnCorner:       true,
	}
}

// Driver 输入驱动
// 所有动作都是同步阻塞的，完成后按配置停顿
type Driver struct {
	opts Options

	// locationFn 获取当前鼠标位置，测试时可替换
	locationFn func() (int, int)
}

// NewDriver 创建输入驱动
func NewDriver(opts Options) *Driver {
	return &Driver{
		opts:       opts,
		locationFn: robotgo.Location,
	}
}

// guard 动作前检查紧急中止条件
func (d *Driver) guard() error {
	if !d.opts.AbortOnCorner {
		return nil
	}
	x, y := d.locationFn()
	if x < cornerSize && y < cornerSize {
		return ErrAborted
	}
	return nil
}

// settle 动作后停顿
func (d *Driver) settle() {
	if d.opts.PauseBetweenActions > 0 {
		time.Sleep(d.opts.PauseBetweenActions)
	}
}

// Click 在指定位置单击左键
func (d *Driver) Click(x, y int) error {
	if err := d.guard(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.MilliSleep(50) // 短暂延迟确保鼠标到位
	robotgo.Click("left", false)
	d.settle()
	return nil
}

// DoubleClick 在指定位置双击左键
func (d *Driver) DoubleClick(x, y int) error {
	if err := d.guard(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.MilliSleep(50)
	robotgo.Click("left", true)
	d.settle()
	return nil
}

// RightClick 在指定位置单击右键
func (d *Driver) RightClick(x, y int) error {
	if err := d.guard(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.MilliSleep(50)
	robotgo.Click("right", false)
	d.settle()
	return nil
}

// MoveTo 移动鼠标到指定位置
// duration 大于 0 时使用平滑移动
func (d *Driver) MoveTo(x, y int, duration time.Duration) error {
	if err := d.guard(); err != nil {
		return err
	}
	if duration > 0 {
		robotgo.MoveSmooth(x, y)
	} else {
		robotgo.Move(x, y)
	}
	d.settle()
	return nil
}

// TypeText 输入文字
func (d *Driver) TypeText(text string) error {
	if err := d.guard(); err != nil {
		return err
	}
	robotgo.TypeStr(text)
	d.settle()
	return nil
}

// PressKey 按下单个按键 (如 "enter", "esc", "tab")
func (d *Driver) PressKey(key string) error {
	if err := d.guard(); err != nil {
		return err
	}
	if err := robotgo.KeyTap(key); err != nil {
		return fmt.Errorf("按键失败: %w", err)
	}
	d.settle()
	return nil
}

// HotKey 按下组合键 (如 "ctrl", "c")
// 最后一个键为主键，其余为修饰键
func (d *Driver) HotKey(keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("组合键为空")
	}
	if err := d.guard(); err != nil {
		return err
	}

	var err error
	if len(keys) == 1 {
		err = robotgo.KeyTap(keys[0])
	} else {
		err = robotgo.KeyTap(keys[len(keys)-1], keys[:len(keys)-1])
	}
	if err != nil {
		return fmt.Errorf("组合键失败: %w", err)
	}
	d.settle()
	return nil
}

// Scroll 滚动鼠标滚轮，amount 为正向上、为负向下
// x, y 大于等于 0 时先移动到该位置再滚动
func (d *Driver) Scroll(amount int, x, y int) error {
	if err := d.guard(); err != nil {
		return err
	}
	if x >= 0 && y >= 0 {
		robotgo.Move(x, y)
		robotgo.MilliSleep(50)
	}
	if amount >= 0 {
		robotgo.ScrollDir(amount, "up")
	} else {
		robotgo.ScrollDir(-amount, "down")
	}
	d.settle()
	return nil
}

// Wait 等待指定时长
func (d *Driver) Wait(duration time.Duration) {
	time.Sleep(duration)
}

// MousePosition 获取当前鼠标位置
func (d *Driver) MousePosition() (x, y int) {
	return d.locationFn()
}
