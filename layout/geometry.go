package layout

import (
	"fmt"

	"github.com/ByLCY/impaper/charwidth"
)

// FontBoxReference 是计算字体盒时使用的参考字符（EN SPACE），对应一格宽度。
const FontBoxReference = "\u2002"

// TextCellSize 计算折行完成后的文本区尺寸，单位是格：
// 高为行数，宽为最宽一行的宽度。measure 为空时使用 charwidth.StringWidth。
func TextCellSize(lines []string, measure func(string) int) Size {
	if measure == nil {
		measure = charwidth.StringWidth
	}
	size := Size{Height: len(lines)}
	for _, line := range lines {
		if w := measure(line); w > size.Width {
			size.Width = w
		}
	}
	return size
}

// FontBoxSize 根据字体计算字体盒尺寸，单位 px。所有字符都按这一网格排列。
func FontBoxSize(font FontMeasurer) Size {
	w, h := font.Bounds(FontBoxReference)
	return Size{Width: w, Height: h}
}

// CanvasSize 根据文本尺寸（格）、布局设置与字体盒计算画布尺寸，单位 px。
// 行距只加在相邻两行之间。
func CanvasSize(cell Size, conf Config, box Size) Size {
	gaps := cell.Height - 1
	if gaps < 0 {
		gaps = 0
	}
	m, p := conf.Margin, conf.Padding
	return Size{
		Width:  m.Left + p.Left + cell.Width*box.Width + m.Right + p.Right,
		Height: m.Top + p.Top + cell.Height*box.Height + conf.Spacing*gaps + m.Bottom + p.Bottom,
	}
}

// TextOrigin 计算文本渲染起点位置，单位 px。
func TextOrigin(conf Config) Point {
	return Point{
		X: conf.Margin.Left + conf.Padding.Left,
		Y: conf.Margin.Top + conf.Padding.Top,
	}
}

// LineOrigin 计算第 i 行（从 0 开始）的起点位置。
func LineOrigin(conf Config, box Size, i int) Point {
	origin := TextOrigin(conf)
	origin.Y += box.Height*i + conf.Spacing*i
	return origin
}

// Build 根据已折行的文本与字体生成排版结果。
func Build(lines []string, font FontMeasurer, conf Config, opts BuildOptions) (*Result, error) {
	if font == nil {
		return nil, fmt.Errorf("layout: 缺少字体")
	}
	box := FontBoxSize(font)
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("layout: 字体盒尺寸无效 %dx%d", box.Width, box.Height)
	}
	cell := TextCellSize(lines, opts.Measure)
	res := &Result{
		Lines:    lines,
		CellSize: cell,
		FontBox:  box,
		Canvas:   CanvasSize(cell, conf, box),
		Origin:   TextOrigin(conf),
		Layout:   conf,
	}
	if opts.Debug.Tokens && opts.Tokenize != nil {
		res.Debug = debugTokens(lines, conf, box, opts)
	}
	return res, nil
}

// debugTokens 记录每个记号的绘制横坐标，标签不推进横坐标。
func debugTokens(lines []string, conf Config, box Size, opts BuildOptions) *Debug {
	measure := opts.Measure
	if measure == nil {
		measure = charwidth.StringWidth
	}
	dbg := &Debug{Tokens: make([][]DebugToken, 0, len(lines))}
	for _, line := range lines {
		x := TextOrigin(conf).X
		toks := opts.Tokenize(line)
		for i := range toks {
			toks[i].X = x
			if !toks[i].Tag {
				x += measure(toks[i].Text) * box.Width
			}
		}
		dbg.Tokens = append(dbg.Tokens, toks)
	}
	return dbg
}
