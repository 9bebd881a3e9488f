package element

import (
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     *Geometry
	}{
		{
			name: "标准响应",
			response: "ELEMENT: Button\nLEFT: 10\nTOP: 20\nWIDTH: 5\nHEIGHT: 3\nCONFIDENCE: high",
			want: &Geometry{Left: 100, Top: 160, Width: 50, Height: 24},
		},
		{
			name: "键不区分大小写",
			response: "left: 10\nTop: 20\nwidth: 5\nHeIgHt: 3",
			want: &Geometry{Left: 100, Top: 160, Width: 50, Height: 24},
		},
		{
			name: "小数百分比",
			response: "LEFT: 12.5\nTOP: 25.25\nWIDTH: 10.0\nHEIGHT: 2.5",
			want: &Geometry{Left: 125, Top: 202, Width: 100, Height: 20},
		},
		{
			name: "值中含多余文字",
			response: "LEFT: about 10 percent\nTOP: 20%\nWIDTH: 5 (approx)\nHEIGHT: 3",
			want: &Geometry{Left: 100, Top: 160, Width: 50, Height: 24},
		},
		{
			name: "缺少 HEIGHT",
			response: "LEFT: 10\nTOP: 20\nWIDTH: 5\nCONFIDENCE: high",
			want: nil,
		},
		{
			name: "缺少全部键",
			response: "I cannot locate that element on this screen.",
			want: nil,
		},
		{
			name: "仅 CONFIDENCE 不构成几何信息",
			response: "CONFIDENCE: high",
			want: nil,
		},
		{
			name: "值无法解析",
			response: "LEFT: unknown\nTOP: 20\nWIDTH: 5\nHEIGHT: 3",
			want: nil,
		},
		{
			name: "空响应",
			response: "",
			want: nil,
		},
		{
			name: "超出 0-100 范围照常转换",
			response: "LEFT: 110\nTOP: 20\nWIDTH: 5\nHEIGHT: 3",
			want: &Geometry{Left: 1100, Top: 160, Width: 50, Height: 24},
		},
		{
			name: "带 Windows 换行",
			response: "LEFT: 10\r\nTOP: 20\r\nWIDTH: 5\r\nHEIGHT: 3\r\n",
			want: &Geometry{Left: 100, Top: 160, Width: 50, Height: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.response, 1000, 800)
			if err != nil {
				t.Fatalf("ParseCoordinates() error = %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("应返回未找到, 实际为 %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("应返回几何信息, 实际为未找到")
			}
			if *got != *tt.want {
				t.Errorf("ParseCoordinates() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCoordinatesRounding(t *testing.T) {
	// pixel = round(percent * dimension / 100)
	got, err := ParseCoordinates("LEFT: 0.05\nTOP: 0.05\nWIDTH: 0.15\nHEIGHT: 0.15", 1000, 1000)
	if err != nil || got == nil {
		t.Fatalf("ParseCoordinates() = %v, %v", got, err)
	}
	// 0.05% * 1000 / 100 = 0.5 -> 四舍五入为 1
	if got.Left != 1 || got.Top != 1 {
		t.Errorf("0.5 像素应四舍五入为 1, 实际为 %+v", got)
	}
	// 0.15% * 1000 / 100 = 1.5 -> 2
	if got.Width != 2 || got.Height != 2 {
		t.Errorf("1.5 像素应四舍五入为 2, 实际为 %+v", got)
	}
}

func TestFirstNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOk bool
	}{
		{" 10", 10, true},
		{"10.5", 10.5, true},
		{"about 42 percent", 42, true},
		{"12.5%", 12.5, true},
		{"[3]", 3, true},
		{"10.", 10, true},
		{"1.2.3", 1.2, true},
		{"no digits here", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := firstNumber(tt.input)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("firstNumber(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, ok, tt.want, tt.wantOk)
		}
	}
}
