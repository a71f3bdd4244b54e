// Package charwidth 计算字符在等宽网格中占用的格数。
package charwidth

import (
	"sort"
	"unicode"

	"golang.org/x/text/width"
)

// WidthFunc 返回单个字符占用的格数（0、1 或 2）。
type WidthFunc func(r rune) int

// widthRange 表示 (上一个上界, upper] 区间内的字符宽度。
type widthRange struct {
	upper rune
	width int
}

// 由 EastAsianWidth-4.0.0.txt 生成，上界严格递增。
var table = []widthRange{
	{126, 1},
	{159, 0},
	{687, 1},
	{710, 0},
	{711, 1},
	{727, 0},
	{733, 1},
	{879, 0},
	{1154, 1},
	{1161, 0},
	{4347, 1},
	{4447, 2},
	{7467, 1},
	{7521, 0},
	{8369, 1},
	{8426, 0},
	{9000, 1},
	{9002, 2},
	{11021, 1},
	{12350, 2},
	{12351, 1},
	{12438, 2},
	{12442, 0},
	{19893, 2},
	{19967, 1},
	{55203, 2},
	{63743, 1},
	{64106, 2},
	{65039, 1},
	{65059, 0},
	{65131, 2},
	{65279, 1},
	{65376, 2},
	{65500, 1},
	{65510, 2},
	{120831, 1},
	{262141, 2},
	{1114109, 1},
}

// Width 计算字符的宽度：
//   - 零宽字符：0
//   - 英文字母、标点等字符：1
//   - 汉字等字符：2
//
// 超出表格范围的字符按 1 处理。
func Width(r rune) int {
	if r == 0x0E || r == 0x0F {
		return 0
	}
	i := sort.Search(len(table), func(i int) bool { return table[i].upper >= r })
	if i == len(table) {
		return 1
	}
	return table[i].width
}

// StringWidth 计算字符串的宽度。
func StringWidth(s string) int {
	return StringWidthFunc(s, Width)
}

// StringWidthFunc 使用指定的宽度函数计算字符串宽度，fn 为空时使用 Width。
func StringWidthFunc(s string, fn WidthFunc) int {
	if fn == nil {
		fn = Width
	}
	total := 0
	for _, r := range s {
		total += fn(r)
	}
	return total
}

// EastAsian 基于 golang.org/x/text/width 的较新 Unicode 数据计算宽度，
// 可作为 Width 的替代传给排版引擎。
func EastAsian(r rune) int {
	if r == 0x0E || r == 0x0F {
		return 0
	}
	if unicode.In(r, unicode.Mn, unicode.Me) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
