// Package screen 提供屏幕截图、编码和模板搜索功能
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
)

// Capture 截取全屏
func Capture() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureRegion 截取屏幕区域
func CaptureRegion(x, y, width, height int) (image.Image, error) {
	img, err := robotgo.CaptureImg(x, y, width, height)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

// Size 获取主屏幕尺寸
func Size() (width, height int) {
	return robotgo.GetScreenSize()
}

// DisplayCount 获取显示器数量
func DisplayCount() int {
	return robotgo.DisplaysNum()
}
