package layout

import (
	"math"
	"strconv"
	"strings"
)

// 该文件定义配置中长度值的单位与换算。布局计算统一使用整数像素。

// Unit 表示长度值在配置中书写的原始单位。
type Unit int

const (
	UnitNone Unit = iota // 未写单位，按像素处理
	UnitPX               // 像素
	UnitPT               // 点
	UnitMM               // 毫米
	UnitIN               // 英寸
)

// 像素、点与毫米之间的换算常数，像素按 96 DPI 计算。
const (
	PtToMm  = 0.352777
	MmToPt  = 1.0 / PtToMm
	PxPerIn = 96.0
	PtToPx  = PxPerIn / 72.0
	MmToPx  = PxPerIn / 25.4
)

// UnitToString 返回单位的简写。
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length 保留数值与其单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPx 将长度换算为像素（浮点）。
func (l Length) ToPx() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitIN:
		return l.Value * PxPerIn
	default:
		return l.Value
	}
}

// Pixels 将长度换算为四舍五入后的整数像素。
func (l Length) Pixels() int {
	return int(math.Round(l.ToPx()))
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseLength 解析形如 "14"、"14px"、"10.5pt"、"2mm" 的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// PxToCanvasPt 将像素字号换算为 canvas 字体面使用的 pt。
// canvas 以毫米为坐标单位，光栅化时取 1px/mm，因此 1px 字号对应 1mm。
func PxToCanvasPt(px float64) float64 { return px * MmToPt }
