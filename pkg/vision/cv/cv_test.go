package cv

import (
	"image"
	"path/filepath"
	"runtime"
	"testing"
)

// getTestDataDir 获取测试资源目录
func getTestDataDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestTemplateMatching(t *testing.T) {
	testDataDir := getTestDataDir()
	sourcePath := filepath.Join(testDataDir, "screen.png")
	templatePath := filepath.Join(testDataDir, "element.png")

	source, err := ReadImage(sourcePath)
	if err != nil {
		t.Skipf("跳过测试：无法读取源图像 %s: %v", sourcePath, err)
		return
	}
	defer source.Close()

	template, err := ReadImage(templatePath)
	if err != nil {
		t.Skipf("跳过测试：无法读取模板图像 %s: %v", templatePath, err)
		return
	}
	defer template.Close()

	matcher := NewTemplateMatching(template, source, 0.8, false)

	result, err := matcher.FindBestResult()
	if err != nil {
		t.Errorf("模板匹配失败: %v", err)
		return
	}

	if result != nil {
		if result.Confidence < 0.8 {
			t.Errorf("返回结果的置信度低于阈值: %.2f", result.Confidence)
		}
		t.Logf("匹配成功: 位置=(%d, %d), 置信度=%.2f",
			result.Result.X, result.Result.Y, result.Confidence)
	} else {
		t.Log("未找到匹配")
	}
}

func TestTemplateLargerThanSource(t *testing.T) {
	testDataDir := getTestDataDir()

	source, err := ReadImage(filepath.Join(testDataDir, "element.png"))
	if err != nil {
		t.Skipf("跳过测试：无法读取测试图像: %v", err)
		return
	}
	defer source.Close()

	template, err := ReadImage(filepath.Join(testDataDir, "screen.png"))
	if err != nil {
		t.Skipf("跳过测试：无法读取测试图像: %v", err)
		return
	}
	defer template.Close()

	// 模板比源图像大，应返回 ImageSizeError 而不是 panic
	matcher := NewTemplateMatching(template, source, 0.8, false)
	_, err = matcher.FindBestResult()
	if err == nil {
		t.Error("模板大于源图像时应返回错误")
	}
	if _, ok := err.(*ImageSizeError); !ok {
		t.Errorf("错误类型应为 *ImageSizeError, 实际为 %T", err)
	}
}

func TestTargetRectangle(t *testing.T) {
	tests := []struct {
		name       string
		leftTopX   int
		leftTopY   int
		w, h       int
		wantCenter Point
	}{
		{"原点", 0, 0, 100, 50, Point{X: 50, Y: 25}},
		{"偏移位置", 200, 100, 60, 40, Point{X: 230, Y: 120}},
		{"单像素", 10, 10, 1, 1, Point{X: 10, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, rect := targetRectangle(image.Pt(tt.leftTopX, tt.leftTopY), tt.w, tt.h)
			if center != tt.wantCenter {
				t.Errorf("中心点 = %+v, want %+v", center, tt.wantCenter)
			}
			if rect.TopLeft.X != tt.leftTopX || rect.TopLeft.Y != tt.leftTopY {
				t.Errorf("TopLeft = %+v", rect.TopLeft)
			}
			if rect.BottomRight.X != tt.leftTopX+tt.w || rect.BottomRight.Y != tt.leftTopY+tt.h {
				t.Errorf("BottomRight = %+v", rect.BottomRight)
			}
		})
	}
}
