package drawer

import (
	"image/color"
	"slices"

	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/impaper/charwidth"
	"github.com/ByLCY/impaper/config"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
	"github.com/ByLCY/impaper/typesetting"
)

// ColoredTextDrawer 生成彩色图，逐个记号绘制文本。
//
// 颜色标签 <Name> 将前景色切换为调色板中的颜色，恢复标签（默认 <Reset/>）
// 切回 Config().Foreground。当前颜色在整次绘制中延续，跨行也不会重置。
// 标签本身不绘制，也不占宽度。
type ColoredTextDrawer struct {
	textDrawer
	its  *typesetting.IgnorableTypeSetting
	tags []string // 构建 its 时调色板给出的标签，未去重
}

// NewColored 创建彩色绘制器。参数含义同 NewSimple。
func NewColored(conf *config.Config, fonts renderer.FontLoader, opts ...typesetting.Option) *ColoredTextDrawer {
	d := &ColoredTextDrawer{textDrawer: newTextDrawer(conf, fonts, opts)}
	d.engine()
	return d
}

// SetConfig 替换配置。
func (d *ColoredTextDrawer) SetConfig(conf *config.Config) {
	if conf == nil {
		conf = config.Default()
	}
	d.conf = conf
	d.engine()
}

// TypeSetting 返回按当前调色板注册了标签的排版引擎。
func (d *ColoredTextDrawer) TypeSetting() *typesetting.IgnorableTypeSetting { return d.engine() }

// engine 在配置对象或调色板标签变化后重建排版引擎。
func (d *ColoredTextDrawer) engine() *typesetting.IgnorableTypeSetting {
	tags := d.conf.Palette.Tags()
	if d.its == nil || d.its.Config() != &d.conf.TypeSetting || !slices.Equal(d.tags, tags) {
		d.its = typesetting.NewIgnorable(&d.conf.TypeSetting, tags, d.tsOpts...)
		d.tags = tags
	}
	return d.its
}

// Wrap 按当前配置折行，标签宽度为 0。
func (d *ColoredTextDrawer) Wrap(text string) []string {
	return d.engine().Wrap(text)
}

// measure 去掉标签后计算宽度。
func (d *ColoredTextDrawer) measure(line string) int {
	its := d.engine()
	return charwidth.StringWidthFunc(its.Strip(line), its.WidthFunc())
}

func (d *ColoredTextDrawer) tokenize(line string) []layout.DebugToken {
	toks := d.engine().TokenList(line)
	out := make([]layout.DebugToken, 0, len(toks))
	for _, tok := range toks {
		out = append(out, layout.DebugToken{Pos: tok.Pos, Text: tok.Text, Tag: tok.Tag})
	}
	return out
}

// TextSize 计算文本区的宽、高，单位是格，标签不计宽度。
func (d *ColoredTextDrawer) TextSize(in TextInput) (layout.Size, error) {
	return d.textSize(in, d.engine(), d.measure)
}

// Layout 折行并返回排版结果；dbg.Tokens 为真时附带每个记号的横坐标。
func (d *ColoredTextDrawer) Layout(text string, dbg layout.DebugOptions) (*layout.Result, error) {
	_, res, err := d.prepare(text, d.engine(), layout.BuildOptions{
		Measure:  d.measure,
		Debug:    dbg,
		Tokenize: d.tokenize,
	})
	return res, err
}

// Draw 将 text 绘制到自动生成的彩色画布上。
func (d *ColoredTextDrawer) Draw(text string) (xdraw.Image, error) {
	its := d.engine()
	font, res, err := d.prepare(text, its, layout.BuildOptions{Measure: d.measure})
	if err != nil {
		return nil, err
	}
	img := renderer.NewCanvas(res.Canvas.Width, res.Canvas.Height, renderer.RGB, d.conf.Background)

	var current color.Color = d.conf.Foreground
	for i, line := range res.Lines {
		p := layout.LineOrigin(d.conf.Layout, res.FontBox, i)
		x := p.X
		for _, tok := range its.Tokens(line) {
			if its.IsTag(tok) {
				current = d.nextColor(tok, current)
				continue
			}
			font.Draw(img, x, p.Y, tok, current)
			x += charwidth.StringWidthFunc(tok, its.WidthFunc()) * res.FontBox.Width
		}
	}
	return img, nil
}

func (d *ColoredTextDrawer) nextColor(tag string, current color.Color) color.Color {
	c, reset, ok := d.conf.Palette.Lookup(tag)
	switch {
	case !ok:
		return current
	case reset:
		return d.conf.Foreground
	default:
		return c
	}
}
