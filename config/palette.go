package config

import (
	"image/color"
	"slices"
)

// DefaultResetTag 恢复前景色的标签。
const DefaultResetTag = "<Reset/>"

// NamedColor 是调色板中的一项，标签写作 <Name>。
type NamedColor struct {
	Name  string     `json:"name"`
	Color color.RGBA `json:"color"`
}

// Palette 是颜色标签表，保持声明顺序。
type Palette struct {
	ResetTag string       `json:"resetTag"`
	Colors   []NamedColor `json:"colors"`
}

// DefaultPalette 返回内置的颜色名。
func DefaultPalette() Palette {
	return Palette{
		ResetTag: DefaultResetTag,
		Colors: []NamedColor{
			{"Black", color.RGBA{A: 0xff}},
			{"Red", color.RGBA{R: 0xff, A: 0xff}},
			{"Green", color.RGBA{G: 0xff, A: 0xff}},
			{"Yellow", color.RGBA{R: 0xff, G: 0xff, A: 0xff}},
			{"Blue", color.RGBA{B: 0xff, A: 0xff}},
			{"Magenta", color.RGBA{R: 0xff, B: 0xff, A: 0xff}},
			{"Cyan", color.RGBA{G: 0xff, B: 0xff, A: 0xff}},
			{"White", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
			{"Gray", color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		},
	}
}

// TagOf 返回颜色名对应的标签。
func TagOf(name string) string {
	return "<" + name + ">"
}

// Set 新增或覆盖颜色，覆盖时保留原位置。
func (p *Palette) Set(name string, c color.RGBA) {
	if i := p.index(name); i >= 0 {
		p.Colors[i].Color = c
		return
	}
	p.Colors = append(p.Colors, NamedColor{Name: name, Color: c})
}

// Color 按名称查找颜色。
func (p Palette) Color(name string) (color.RGBA, bool) {
	if i := p.index(name); i >= 0 {
		return p.Colors[i].Color, true
	}
	return color.RGBA{}, false
}

// Lookup 按标签查找颜色；reset 为 true 表示该标签是恢复标签。
func (p Palette) Lookup(tag string) (c color.RGBA, reset, ok bool) {
	if tag == p.ResetTag {
		return color.RGBA{}, true, true
	}
	for _, nc := range p.Colors {
		if TagOf(nc.Name) == tag {
			return nc.Color, false, true
		}
	}
	return color.RGBA{}, false, false
}

// Tags 返回需要在排版时忽略的全部标签：先恢复标签，再按声明顺序的颜色标签。
func (p Palette) Tags() []string {
	tags := make([]string, 0, len(p.Colors)+1)
	if p.ResetTag != "" {
		tags = append(tags, p.ResetTag)
	}
	for _, nc := range p.Colors {
		tags = append(tags, TagOf(nc.Name))
	}
	return tags
}

func (p Palette) index(name string) int {
	return slices.IndexFunc(p.Colors, func(nc NamedColor) bool { return nc.Name == name })
}
