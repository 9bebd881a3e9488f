// Package element 提供界面元素的学习、缓存和再定位
//
// 元素由自然语言描述命名。首次定位依赖视觉模型估计位置，
// 命中后裁剪出模板图像缓存到磁盘，后续定位直接做本地图像匹配。
package element

import (
	"image"
	"math"
)

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Geometry 表示像素空间的矩形区域
type Geometry struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GeometryFromPercent 将百分比包围框转换为像素矩形
// pixel = round(percent * dimension / 100)
func GeometryFromPercent(left, top, width, height float64, screenWidth, screenHeight int) Geometry {
	return Geometry{
		Left:   percentToPixel(left, screenWidth),
		Top:    percentToPixel(top, screenHeight),
		Width:  percentToPixel(width, screenWidth),
		Height: percentToPixel(height, screenHeight),
	}
}

func percentToPixel(percent float64, dimension int) int {
	return int(math.Round(percent * float64(dimension) / 100))
}

// Center 返回矩形中心点（点击目标）
func (g Geometry) Center() Point {
	return Point{
		X: g.Left + g.Width/2,
		Y: g.Top + g.Height/2,
	}
}

// Within 检查矩形是否完全位于屏幕范围内
// left+width 恰好等于屏幕宽度（或 top+height 等于高度）视为有效
func (g Geometry) Within(screenWidth, screenHeight int) bool {
	return g.Left >= 0 && g.Top >= 0 &&
		g.Width >= 0 && g.Height >= 0 &&
		g.Left+g.Width <= screenWidth &&
		g.Top+g.Height <= screenHeight
}

// ClampTo 将矩形收敛到屏幕范围内，返回收敛后的矩形
// 完全越界时宽或高收敛为 0
func (g Geometry) ClampTo(screenWidth, screenHeight int) Geometry {
	left := clampInt(g.Left, 0, screenWidth)
	top := clampInt(g.Top, 0, screenHeight)
	right := clampInt(g.Left+g.Width, left, screenWidth)
	bottom := clampInt(g.Top+g.Height, top, screenHeight)

	return Geometry{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Empty 检查矩形是否没有面积
func (g Geometry) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// ToImageRect 转换为 image.Rectangle
func (g Geometry) ToImageRect() image.Rectangle {
	return image.Rect(g.Left, g.Top, g.Left+g.Width, g.Top+g.Height)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
