package element

import (
	"strconv"
	"strings"
)

// 定位响应中必须出现的四个键
var requiredCoordKeys = []string{"LEFT", "TOP", "WIDTH", "HEIGHT"}

// ParseCoordinates 解析视觉模型的定位响应
// 响应应包含 LEFT/TOP/WIDTH/HEIGHT 四行 KEY: value（键不区分大小写），
// 值为 0-100 的百分比，取值中第一个数字记号。
// 四个键齐全时返回转换后的像素矩形；任何一个缺失或无法解析时
// 返回 nil, nil（全有或全无，绝不返回部分几何信息）。
// 超出 [0,100] 的百分比照常转换，越界矩形由调用方负责收敛。
func ParseCoordinates(response string, screenWidth, screenHeight int) (*Geometry, error) {
	percents := make(map[string]float64, 4)

	for _, line := range strings.Split(response, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		key = strings.ToUpper(strings.TrimSpace(key))
		if !isCoordKey(key) {
			continue
		}

		num, ok := firstNumber(value)
		if !ok {
			continue
		}
		percents[key] = num
	}

	for _, key := range requiredCoordKeys {
		if _, ok := percents[key]; !ok {
			return nil, nil
		}
	}

	geo := GeometryFromPercent(
		percents["LEFT"], percents["TOP"],
		percents["WIDTH"], percents["HEIGHT"],
		screenWidth, screenHeight,
	)
	return &geo, nil
}

func isCoordKey(key string) bool {
	for _, k := range requiredCoordKeys {
		if key == k {
			return true
		}
	}
	return false
}

// firstNumber 提取字符串中第一个数字记号（数字序列加可选小数点）
// 不使用正则：逐字符扫描，遇到数字后收集连续的数字和至多一个小数点
func firstNumber(s string) (float64, bool) {
	start := -1
	end := len(s)
	dotSeen := false

	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if r == '.' && !dotSeen {
				dotSeen = true
				continue
			}
			end = i
			break
		}
	}

	if start < 0 {
		return 0, false
	}

	token := strings.TrimSuffix(s[start:end], ".")
	num, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
