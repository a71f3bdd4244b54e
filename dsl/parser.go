// Package dsl 解析 impaper 的渲染配置文件：
//
//	render Banner v1 {
//	  font { src: "package:///gomono.ttf"  size: 14 }
//	  typesetting { line-width: 40  indentation: ">>>" }
//	  layout { margin: [6, 6, 6, 6]  padding: 2  spacing: 2 }
//	  colors {
//	    foreground: #FFFFFF
//	    background: #000000
//	    color Red = #FF0000
//	  }
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	configLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|mm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	// typeNames 是记号类型到规则名的反查表。
	typeNames = func() map[lexer.TokenType]string {
		names := map[lexer.TokenType]string{}
		for name, tt := range configLexer.Symbols() {
			names[tt] = name
		}
		return names
	}()

	configParser = participle.MustBuild[Document](
		participle.Lexer(configLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是渲染配置文件的根节点。
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'render' @Ident"`
	Version  string         `parser:"@Ident?"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section 是顶层段落：font / typesetting / layout / colors。
type Section struct {
	Font        *FontSection        `parser:"  @@"`
	TypeSetting *TypeSettingSection `parser:"| @@"`
	Layout      *LayoutSection      `parser:"| @@"`
	Colors      *ColorsSection      `parser:"| @@"`
}

// Kind 返回段落类型名。
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Font != nil:
		return "font"
	case s.TypeSetting != nil:
		return "typesetting"
	case s.Layout != nil:
		return "layout"
	case s.Colors != nil:
		return "colors"
	default:
		return "unknown"
	}
}

// Block 返回段落的语句块。
func (s *Section) Block() *Block {
	switch {
	case s == nil:
		return nil
	case s.Font != nil:
		return s.Font.Block
	case s.TypeSetting != nil:
		return s.TypeSetting.Block
	case s.Layout != nil:
		return s.Layout.Block
	case s.Colors != nil:
		return s.Colors.Block
	default:
		return nil
	}
}

// FontSection 设置字体路径与字号。
type FontSection struct {
	Block *Block `parser:"'font' @@"`
}

// TypeSettingSection 设置行宽与缩进。
type TypeSettingSection struct {
	Block *Block `parser:"'typesetting' @@"`
}

// LayoutSection 设置外边距、内边距与行距。
type LayoutSection struct {
	Block *Block `parser:"'layout' @@"`
}

// ColorsSection 设置前景、背景与颜色标签。
type ColorsSection struct {
	Block *Block `parser:"'colors' @@"`
}

// Block 是花括号包围的语句列表。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement 是块内的一条语句：赋值或命令。
type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	Command    *Command    `parser:"| @@"`
}

// Assignment 使用冒号语法（key: value）。
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Command 是形如 `color Red = #FF0000` 的声明。
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []*Lexeme      `parser:"@@*"`
}

// Value 是属性值。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Array  *ArrayValue    `parser:"| @@"`
	Ident  *string        `parser:"| @Ident"`
}

// ArrayValue 对应 `[ ... ]`。
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Lexeme 记录命令参数中的单个词法记号。
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"` // 字符串已去掉引号
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse 实现 participle.Parseable：读取一个记号，遇到换行、花括号或分号时停止。
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok == nil || tok.EOF() {
		return participle.NextMatch
	}
	switch typeNames[tok.Type] {
	case "Newline", "LBrace", "RBrace":
		return participle.NextMatch
	case "Symbol":
		if tok.Value == ";" {
			return participle.NextMatch
		}
	}
	tok = lex.Next()

	*l = Lexeme{Type: typeNames[tok.Type], Value: tok.Value, Raw: tok.Value, Pos: tok.Pos}
	if l.Type == "" {
		l.Type = fmt.Sprintf("#%d", tok.Type)
	}
	if l.Type == "String" {
		val, err := strconv.Unquote(tok.Value)
		if err != nil {
			return err
		}
		l.Value = val
	}
	return nil
}

// StringLiteral 在捕获时按 Go 语法去掉引号。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少内容")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 io.Reader 解析配置，name 用于错误信息中的位置。
func Parse(name string, r io.Reader) (*Document, error) {
	return configParser.Parse(name, r)
}

// ParseString 从字符串解析配置。
func ParseString(input string) (*Document, error) {
	return configParser.ParseString("", input)
}
