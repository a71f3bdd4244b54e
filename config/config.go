// Package config 构造文本转图像引擎的配置对象：默认值、配置文件解析与颜色标签。
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/impaper/charwidth"
	"github.com/ByLCY/impaper/dsl"
	"github.com/ByLCY/impaper/fonts"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/typesetting"
)

// DefaultFontSize 是默认像素字号。
const DefaultFontSize = 14

// Font 是字体相关设置。Path 为 package:/// 开头时表示内置字体。
type Font struct {
	Path string `json:"path"`
	Size int    `json:"size"` // 像素字号
}

// Config 汇总绘制所需的全部设置。绘制器与其排版引擎共享同一个 Config，
// 修改 TypeSetting 字段会在下一次折行时生效。
type Config struct {
	Font        Font               `json:"font"`
	TypeSetting typesetting.Config `json:"typesetting"`
	Layout      layout.Config      `json:"layout"`
	Foreground  color.RGBA         `json:"foreground"`
	Background  color.RGBA         `json:"background"`
	Palette     Palette            `json:"palette"`
}

// Default 返回默认配置：内置等宽字体 14px，白字黑底，行宽 48 格。
func Default() *Config {
	return &Config{
		Font:        Font{Path: fonts.DefaultPath, Size: DefaultFontSize},
		TypeSetting: typesetting.DefaultConfig(),
		Layout:      layout.DefaultConfig(),
		Foreground:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Background:  color.RGBA{A: 0xff},
		Palette:     DefaultPalette(),
	}
}

// Validate 检查配置是否能保证折行推进，缩进宽度按 charwidth.Width 计算。
func (c *Config) Validate() error {
	return c.ValidateWidth(charwidth.Width)
}

// ValidateWidth 与 Validate 相同，但用 fn 计算缩进宽度。
// 排版引擎替换了字符宽度函数时，应传入同一个函数。
func (c *Config) ValidateWidth(fn charwidth.WidthFunc) error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("字号必须为正数: %d", c.Font.Size)
	}
	if c.TypeSetting.LineWidth <= 0 {
		return fmt.Errorf("行宽必须为正数: %d", c.TypeSetting.LineWidth)
	}
	if w := charwidth.StringWidthFunc(c.TypeSetting.Indentation, fn); w >= c.TypeSetting.LineWidth {
		return fmt.Errorf("缩进符 %q 的宽度 %d 必须小于行宽 %d", c.TypeSetting.Indentation, w, c.TypeSetting.LineWidth)
	}
	return nil
}

// Load 读取配置文件，未出现的项保留默认值。
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(path, file)
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument 将配置 AST 应用到默认配置上。
func FromDocument(doc *dsl.Document) (*Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("配置文档为空")
	}
	conf := Default()
	for _, section := range doc.Sections {
		var err error
		switch {
		case section.Font != nil:
			err = conf.applyFont(section.Block())
		case section.TypeSetting != nil:
			err = conf.applyTypeSetting(section.Block())
		case section.Layout != nil:
			err = conf.applyLayout(section.Block())
		case section.Colors != nil:
			err = conf.applyColors(section.Block())
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", section.Kind(), err)
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyFont(block *dsl.Block) error {
	return eachAssignment(block, func(key string, val *dsl.Value) error {
		switch key {
		case "src", "path":
			s, ok := valueString(val)
			if !ok {
				return fmt.Errorf("%s 需要字符串", key)
			}
			c.Font.Path = s
		case "size":
			px, err := valuePixels(val)
			if err != nil {
				return fmt.Errorf("size: %w", err)
			}
			c.Font.Size = px
		}
		return nil
	})
}

func (c *Config) applyTypeSetting(block *dsl.Block) error {
	return eachAssignment(block, func(key string, val *dsl.Value) error {
		switch key {
		case "line-width":
			if val.Number == nil {
				return fmt.Errorf("line-width 需要整数")
			}
			n, err := strconv.Atoi(*val.Number)
			if err != nil {
				return fmt.Errorf("line-width 需要整数: %w", err)
			}
			c.TypeSetting.LineWidth = n
		case "indentation":
			s, ok := valueString(val)
			if !ok {
				return fmt.Errorf("indentation 需要字符串")
			}
			c.TypeSetting.Indentation = s
		}
		return nil
	})
}

func (c *Config) applyLayout(block *dsl.Block) error {
	return eachAssignment(block, func(key string, val *dsl.Value) error {
		switch key {
		case "margin", "padding":
			vals, err := valuePixelList(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if key == "margin" {
				c.Layout.Margin = layout.SpacingOf(c.Layout.Margin, vals...)
			} else {
				c.Layout.Padding = layout.SpacingOf(c.Layout.Padding, vals...)
			}
		case "spacing":
			px, err := valuePixels(val)
			if err != nil {
				return fmt.Errorf("spacing: %w", err)
			}
			c.Layout.Spacing = px
		}
		return nil
	})
}

func (c *Config) applyColors(block *dsl.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := c.applyColorAssignment(stmt.Assignment.Key, stmt.Assignment.Value); err != nil {
				return err
			}
		case stmt.Command != nil && stmt.Command.Name == "color":
			name, value := parseColorCommand(stmt.Command)
			if name == "" || value == "" {
				return fmt.Errorf("color 声明需要名称与颜色值")
			}
			col, err := ParseColor(value)
			if err != nil {
				return err
			}
			c.Palette.Set(name, col)
		}
	}
	return nil
}

func (c *Config) applyColorAssignment(key string, val *dsl.Value) error {
	switch key {
	case "foreground", "background":
		col, err := c.resolveColor(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "foreground" {
			c.Foreground = col
		} else {
			c.Background = col
		}
	case "reset-tag":
		s, ok := valueString(val)
		if !ok || s == "" {
			return fmt.Errorf("reset-tag 需要非空字符串")
		}
		c.Palette.ResetTag = s
	}
	return nil
}

// resolveColor 接受十六进制颜色或调色板中的颜色名。
func (c *Config) resolveColor(val *dsl.Value) (color.RGBA, error) {
	if val.Color != nil {
		return ParseColor(*val.Color)
	}
	s, ok := valueString(val)
	if !ok {
		return color.RGBA{}, fmt.Errorf("需要颜色值")
	}
	if strings.HasPrefix(s, "#") {
		return ParseColor(s)
	}
	if col, ok := c.Palette.Color(s); ok {
		return col, nil
	}
	return color.RGBA{}, fmt.Errorf("未定义的颜色 %s", s)
}

// parseColorCommand 解析 `color Name = #RRGGBB` 或 `color Name #RRGGBB`。
func parseColorCommand(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value
	}
	return name, value
}

// ParseColor 解析 #RGB、#RRGGBB 或 #RRGGBBAA 形式的颜色。
func ParseColor(value string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func eachAssignment(block *dsl.Block, fn func(key string, val *dsl.Value) error) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if err := fn(strings.ToLower(stmt.Assignment.Key), stmt.Assignment.Value); err != nil {
			return err
		}
	}
	return nil
}

func valueString(val *dsl.Value) (string, bool) {
	switch {
	case val == nil:
		return "", false
	case val.String != nil:
		return string(*val.String), true
	case val.Ident != nil:
		return *val.Ident, true
	default:
		return "", false
	}
}

func valuePixels(val *dsl.Value) (int, error) {
	if val == nil || val.Number == nil {
		return 0, fmt.Errorf("需要数值")
	}
	l, err := layout.ParseLength(*val.Number)
	if err != nil {
		return 0, err
	}
	return l.Pixels(), nil
}

func valuePixelList(val *dsl.Value) ([]int, error) {
	if val != nil && val.Array != nil {
		out := make([]int, 0, len(val.Array.Values))
		for _, v := range val.Array.Values {
			px, err := valuePixels(v)
			if err != nil {
				return nil, err
			}
			out = append(out, px)
		}
		return out, nil
	}
	px, err := valuePixels(val)
	if err != nil {
		return nil, err
	}
	return []int{px}, nil
}
