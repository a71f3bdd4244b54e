// Package typesetting 是简单的文字排版引擎，按格宽计算文本的换行与折行。
package typesetting

import (
	"unicode/utf8"

	"github.com/ByLCY/impaper/charwidth"
)

// 默认排版参数。
const (
	DefaultLineWidth   = 48
	DefaultIndentation = "  "
)

// Config 控制折行位置与折行后的缩进符号。
// 排版引擎持有 Config 的指针，每次折行时重新读取，修改字段在下一次调用时生效。
type Config struct {
	LineWidth   int    `json:"lineWidth"`   // 行宽，单位是格
	Indentation string `json:"indentation"` // 折行后在新行首添加的符号
}

// DefaultConfig 返回默认排版配置：行宽 48 格，缩进两个空格。
func DefaultConfig() Config {
	return Config{LineWidth: DefaultLineWidth, Indentation: DefaultIndentation}
}

// Option 调整排版引擎的行为。
type Option func(*TypeSetting)

// WithWidthFunc 替换字符宽度函数，默认使用 charwidth.Width。
func WithWidthFunc(fn charwidth.WidthFunc) Option {
	return func(ts *TypeSetting) {
		if fn != nil {
			ts.width = fn
		}
	}
}

// TypeSetting 计算文本折行：
//
//	conf := typesetting.Config{LineWidth: 40, Indentation: ">>>"}
//	lines := typesetting.New(&conf).Wrap(strings.Repeat("1234567890", 9))
//	// ["1234567890123456789012345678901234567890",
//	//  ">>>1234567890123456789012345678901234567",
//	//  ">>>8901234567890"]
type TypeSetting struct {
	conf  *Config
	width charwidth.WidthFunc
}

// New 创建排版引擎。conf 由调用方持有，为空时使用一份独立的默认配置。
func New(conf *Config, opts ...Option) *TypeSetting {
	if conf == nil {
		def := DefaultConfig()
		conf = &def
	}
	ts := &TypeSetting{conf: conf, width: charwidth.Width}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// Config 返回引擎正在使用的配置（与调用方共享同一份）。
func (ts *TypeSetting) Config() *Config { return ts.conf }

// WidthFunc 返回引擎使用的字符宽度函数。
func (ts *TypeSetting) WidthFunc() charwidth.WidthFunc { return ts.width }

// IndentWidth 返回缩进符号的宽度。
func (ts *TypeSetting) IndentWidth() int {
	return charwidth.StringWidthFunc(ts.conf.Indentation, ts.width)
}

// Wrap 根据折行规则给文本换行、折行，不保留换行符。空文本返回空切片。
func (ts *TypeSetting) Wrap(text string) []string {
	units := make([]unit, 0, len(text))
	for i, r := range text {
		units = append(units, unit{
			start:   i,
			end:     i + utf8.RuneLen(r),
			width:   ts.width(r),
			newline: r == '\n',
		})
	}
	return ts.wrapUnits(text, units)
}

// unit 是折行的最小单位：单个字符或一个标签，start/end 为字节偏移。
type unit struct {
	start, end int
	width      int
	newline    bool
}

type breakKind int

const (
	hardBreak breakKind = iota + 1 // 换行符
	softBreak                      // 超出行宽的折行
)

type breakMark struct {
	pos  int
	end  int
	kind breakKind
}

// wrapUnits 分两遍处理：先给文本打上换行、折行标记，再按标记拆分。
func (ts *TypeSetting) wrapUnits(text string, units []unit) []string {
	lineWidth := ts.conf.LineWidth
	indent := ts.conf.Indentation
	indentWidth := ts.IndentWidth()

	var marks []breakMark
	current := 0
	for _, u := range units {
		if u.newline {
			marks = append(marks, breakMark{pos: u.start, end: u.end, kind: hardBreak})
			current = 0
			continue
		}
		if current+u.width > lineWidth {
			marks = append(marks, breakMark{pos: u.start, end: u.start, kind: softBreak})
			// 折行后新行带缩进，且预留一格给续行的首个字符
			current = indentWidth + 1
			continue
		}
		current += u.width
	}

	lines := make([]string, 0, len(marks)+1)
	cursor := 0
	pending := false
	emit := func(s string) {
		if pending {
			s = indent + s
		}
		lines = append(lines, s)
	}
	for _, m := range marks {
		switch m.kind {
		case hardBreak:
			emit(text[cursor:m.pos])
			cursor = m.end
			pending = false
		case softBreak:
			emit(text[cursor:m.pos])
			cursor = m.pos
			pending = true
		}
	}
	if cursor < len(text) {
		emit(text[cursor:])
	}
	return lines
}
