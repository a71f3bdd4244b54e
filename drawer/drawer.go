// Package drawer 将文本折行、排版并绘制为图像。
//
// SimpleTextDrawer 生成灰度图；ColoredTextDrawer 生成彩色图，
// 支持用 <Red> 之类的颜色标签切换前景色，用 <Reset/> 恢复默认前景色。
package drawer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ByLCY/impaper/charwidth"
	"github.com/ByLCY/impaper/config"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
	canvasrenderer "github.com/ByLCY/impaper/renderer/canvas"
	"github.com/ByLCY/impaper/typesetting"
)

// ErrInvalidArgument 表示 TextInput 既没有给出文本也没有给出行，或两者同时给出；
// 也用于配置无法保证折行推进的情形，例如缩进不窄于行宽。
var ErrInvalidArgument = errors.New("参数无效")

// TextInput 是计算文本尺寸的输入：未折行的文本或已折行的行，二者取其一。
type TextInput struct {
	Text  *string
	Lines []string
}

// TextOf 以未折行的文本构造输入。
func TextOf(text string) TextInput {
	return TextInput{Text: &text}
}

// LinesOf 以已折行的行构造输入。
func LinesOf(lines []string) TextInput {
	if lines == nil {
		lines = []string{}
	}
	return TextInput{Lines: lines}
}

func (in TextInput) validate() error {
	switch {
	case in.Text != nil && in.Lines != nil:
		return fmt.Errorf("%w: 不能同时给出文本与行", ErrInvalidArgument)
	case in.Text == nil && in.Lines == nil:
		return fmt.Errorf("%w: 需要文本或行", ErrInvalidArgument)
	}
	return nil
}

// defaultFonts 是未指定字体加载器时共享的 canvas 字体缓存。
var defaultFonts = sync.OnceValue(func() renderer.FontLoader {
	return canvasrenderer.NewLoader("")
})

// textDrawer 是两种绘制器共用的部分。
type textDrawer struct {
	conf   *config.Config
	fonts  renderer.FontLoader
	tsOpts []typesetting.Option
}

func newTextDrawer(conf *config.Config, fonts renderer.FontLoader, opts []typesetting.Option) textDrawer {
	if conf == nil {
		conf = config.Default()
	}
	if fonts == nil {
		fonts = defaultFonts()
	}
	return textDrawer{conf: conf, fonts: fonts, tsOpts: opts}
}

// Config 返回绘制器使用的配置。对其字段的修改会在下一次调用时生效。
func (d *textDrawer) Config() *config.Config { return d.conf }

func (d *textDrawer) font() (renderer.Font, error) {
	return d.fonts.Load(d.conf.Font.Path, d.conf.Font.Size)
}

// FontBoxSize 根据当前字体设置计算字体盒尺寸，单位 px。
func (d *textDrawer) FontBoxSize() (layout.Size, error) {
	font, err := d.font()
	if err != nil {
		return layout.Size{}, err
	}
	return layout.FontBoxSize(font), nil
}

// CanvasSize 根据文本尺寸（格）计算画布尺寸，单位 px。
func (d *textDrawer) CanvasSize(cell layout.Size) (layout.Size, error) {
	box, err := d.FontBoxSize()
	if err != nil {
		return layout.Size{}, err
	}
	return layout.CanvasSize(cell, d.conf.Layout, box), nil
}

// TextOrigin 返回文本渲染起点，单位 px。
func (d *textDrawer) TextOrigin() layout.Point {
	return layout.TextOrigin(d.conf.Layout)
}

// wrapper 是两种排版引擎共有的折行操作。
type wrapper interface {
	Wrap(text string) []string
	WidthFunc() charwidth.WidthFunc
}

// validate 按排版引擎实际使用的字符宽度检查配置。
func (d *textDrawer) validate(w wrapper) error {
	if err := d.conf.ValidateWidth(w.WidthFunc()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// prepare 校验配置、折行、加载字体并生成排版结果。
func (d *textDrawer) prepare(text string, w wrapper, opts layout.BuildOptions) (renderer.Font, *layout.Result, error) {
	if err := d.validate(w); err != nil {
		return nil, nil, err
	}
	font, err := d.font()
	if err != nil {
		return nil, nil, err
	}
	res, err := layout.Build(w.Wrap(text), font, d.conf.Layout, opts)
	if err != nil {
		return nil, nil, err
	}
	return font, res, nil
}

func (d *textDrawer) textSize(in TextInput, w wrapper, measure func(string) int) (layout.Size, error) {
	if err := in.validate(); err != nil {
		return layout.Size{}, err
	}
	lines := in.Lines
	if in.Text != nil {
		if err := d.validate(w); err != nil {
			return layout.Size{}, err
		}
		lines = w.Wrap(*in.Text)
	}
	return layout.TextCellSize(lines, measure), nil
}
