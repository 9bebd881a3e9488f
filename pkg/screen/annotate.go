package screen

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// annotateColor 标注框和文字的颜色
var annotateColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}

// Annotate 在图像上绘制矩形框和标签，返回带标注的副本
// 用于保存调试截图，标出匹配或学习到的元素区域
func Annotate(img image.Image, rect image.Rectangle, label string) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	drawRect(out, rect.Intersect(bounds), 2)

	if label != "" {
		drawLabel(out, label, rect.Min.X, rect.Min.Y-4)
	}

	return out
}

// drawRect 绘制指定线宽的矩形边框
func drawRect(img *image.RGBA, rect image.Rectangle, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			setPixel(img, x, rect.Min.Y+t)
			setPixel(img, x, rect.Max.Y-1-t)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			setPixel(img, rect.Min.X+t, y)
			setPixel(img, rect.Max.X-1-t, y)
		}
	}
}

func setPixel(img *image.RGBA, x, y int) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, annotateColor)
	}
}

// drawLabel 在指定位置绘制文字标签
// 标签超出图像上边界时移到矩形内侧
func drawLabel(img *image.RGBA, label string, x, y int) {
	if y < basicfont.Face7x13.Height {
		y += basicfont.Face7x13.Height + 8
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(annotateColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
