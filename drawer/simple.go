package drawer

import (
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/impaper/charwidth"
	"github.com/ByLCY/impaper/config"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
	"github.com/ByLCY/impaper/typesetting"
)

// SimpleTextDrawer 自动生成一个刚好包住折行后文本的灰度图，并逐行绘制文本。
//
//	d := drawer.NewSimple(nil, nil)
//	d.Config().TypeSetting.Indentation = ">>>"
//	img, err := d.Draw("abcdefg\n你好世界")
type SimpleTextDrawer struct {
	textDrawer
	ts *typesetting.TypeSetting
}

// NewSimple 创建灰度绘制器。conf 为空时使用 config.Default()，
// fonts 为空时使用共享的 canvas 字体缓存。
func NewSimple(conf *config.Config, fonts renderer.FontLoader, opts ...typesetting.Option) *SimpleTextDrawer {
	d := &SimpleTextDrawer{textDrawer: newTextDrawer(conf, fonts, opts)}
	d.ts = typesetting.New(&d.conf.TypeSetting, d.tsOpts...)
	return d
}

// SetConfig 替换配置，排版引擎随之指向新配置。
func (d *SimpleTextDrawer) SetConfig(conf *config.Config) {
	if conf == nil {
		conf = config.Default()
	}
	d.conf = conf
	d.ts = typesetting.New(&conf.TypeSetting, d.tsOpts...)
}

// TypeSetting 返回排版引擎，其配置与 Config().TypeSetting 是同一个对象。
func (d *SimpleTextDrawer) TypeSetting() *typesetting.TypeSetting { return d.ts }

// Wrap 按当前配置折行。
func (d *SimpleTextDrawer) Wrap(text string) []string {
	return d.ts.Wrap(text)
}

func (d *SimpleTextDrawer) measure(line string) int {
	return charwidth.StringWidthFunc(line, d.ts.WidthFunc())
}

// TextSize 计算文本区的宽、高，单位是格。
func (d *SimpleTextDrawer) TextSize(in TextInput) (layout.Size, error) {
	return d.textSize(in, d.ts, d.measure)
}

// Layout 折行并返回排版结果，不绘制；dbg.Tokens 为真时附带逐字符的横坐标。
func (d *SimpleTextDrawer) Layout(text string, dbg layout.DebugOptions) (*layout.Result, error) {
	_, res, err := d.prepare(text, d.ts, layout.BuildOptions{
		Measure:  d.measure,
		Debug:    dbg,
		Tokenize: tokenizeRunes,
	})
	return res, err
}

func tokenizeRunes(line string) []layout.DebugToken {
	out := make([]layout.DebugToken, 0, len(line))
	for pos, r := range line {
		out = append(out, layout.DebugToken{Pos: pos, Text: string(r)})
	}
	return out
}

// Draw 将 text 绘制到自动生成的灰度画布上。
func (d *SimpleTextDrawer) Draw(text string) (xdraw.Image, error) {
	font, res, err := d.prepare(text, d.ts, layout.BuildOptions{Measure: d.measure})
	if err != nil {
		return nil, err
	}
	img := renderer.NewCanvas(res.Canvas.Width, res.Canvas.Height, renderer.Grayscale, d.conf.Background)
	for i, line := range res.Lines {
		p := layout.LineOrigin(d.conf.Layout, res.FontBox, i)
		font.Draw(img, p.X, p.Y, line, d.conf.Foreground)
	}
	return img, nil
}
