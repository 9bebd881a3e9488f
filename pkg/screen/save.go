package screen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// TimestampFormat 截图和模板文件名使用的时间戳格式
const TimestampFormat = "20060102_150405"

// SaveImage 将图像保存为 PNG 文件，必要时创建父目录
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("PNG 编码失败: %w", err)
	}
	return nil
}

// SaveTimestamped 将图像以时间戳文件名保存到指定目录，返回完整路径
// filename 为空时自动生成 screenshot_<时间戳>.png
func SaveTimestamped(img image.Image, dir, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("screenshot_%s.png", time.Now().Format(TimestampFormat))
	}
	path := filepath.Join(dir, filename)
	if err := SaveImage(img, path); err != nil {
		return "", err
	}
	return path, nil
}
