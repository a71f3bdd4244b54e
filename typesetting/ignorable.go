package typesetting

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Token 是一行文本中的一个记号：一个完整的标签或单个字符。
type Token struct {
	Pos  int    `json:"pos"` // 在原字符串中的字节偏移
	Text string `json:"text"`
	Tag  bool   `json:"tag"`
}

// IgnorableTypeSetting 是可忽略某些标签的排版引擎。
//
//	its := typesetting.NewIgnorable(&conf, []string{"<emph>", "<emph/>"})
//
// 折行时标签的宽度当作 0，且标签不会被拆到两行。
type IgnorableTypeSetting struct {
	*TypeSetting

	tags    []string
	tagSet  map[string]struct{}
	pattern *regexp.Regexp // 无标签时为 nil
}

// NewIgnorable 创建可忽略标签的排版引擎。标签按注册顺序组成择一匹配，
// 同一位置有多个标签可匹配时取先注册者；空字符串与重复标签会被忽略。
func NewIgnorable(conf *Config, tags []string, opts ...Option) *IgnorableTypeSetting {
	its := &IgnorableTypeSetting{
		TypeSetting: New(conf, opts...),
		tagSet:      make(map[string]struct{}, len(tags)),
	}
	quoted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := its.tagSet[tag]; ok {
			continue
		}
		its.tagSet[tag] = struct{}{}
		its.tags = append(its.tags, tag)
		quoted = append(quoted, regexp.QuoteMeta(tag))
	}
	if len(quoted) > 0 {
		its.pattern = regexp.MustCompile(strings.Join(quoted, "|"))
	}
	return its
}

// Tags 返回已注册的标签（注册顺序）。
func (its *IgnorableTypeSetting) Tags() []string {
	return append([]string(nil), its.tags...)
}

// IsTag 判断 s 是否恰好是一个已注册的标签。
func (its *IgnorableTypeSetting) IsTag(s string) bool {
	_, ok := its.tagSet[s]
	return ok
}

// Tokens 从左到右惰性地产出 (位置, 记号)。匹配到标签时整体作为一个记号，
// 否则产出单个字符。所有记号首尾相接，恰好覆盖整行。
func (its *IgnorableTypeSetting) Tokens(line string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		for i < len(line) {
			next := len(line)
			nextEnd := len(line)
			if its.pattern != nil {
				if loc := its.pattern.FindStringIndex(line[i:]); loc != nil {
					next, nextEnd = i+loc[0], i+loc[1]
				}
			}
			for i < next {
				_, size := utf8.DecodeRuneInString(line[i:])
				if !yield(i, line[i:i+size]) {
					return
				}
				i += size
			}
			if i == next && i < len(line) {
				if !yield(i, line[i:nextEnd]) {
					return
				}
				i = nextEnd
			}
		}
	}
}

// TokenList 是 Tokens 的立即求值版本。
func (its *IgnorableTypeSetting) TokenList(line string) []Token {
	var tokens []Token
	for pos, text := range its.Tokens(line) {
		tokens = append(tokens, Token{Pos: pos, Text: text, Tag: its.IsTag(text)})
	}
	return tokens
}

// TokenWidth 返回记号的宽度：标签为 0，其余按字符宽度计算。
func (its *IgnorableTypeSetting) TokenWidth(token string) int {
	if its.IsTag(token) {
		return 0
	}
	total := 0
	for _, r := range token {
		total += its.width(r)
	}
	return total
}

// Strip 删除行内所有已注册的标签。
func (its *IgnorableTypeSetting) Strip(line string) string {
	if its.pattern == nil {
		return line
	}
	return its.pattern.ReplaceAllLiteralString(line, "")
}

// Wrap 与 TypeSetting.Wrap 使用相同的折行规则，但以记号为单位：
// 标签宽度当作 0，且不会被拆开。
func (its *IgnorableTypeSetting) Wrap(text string) []string {
	units := make([]unit, 0, len(text))
	for pos, tok := range its.Tokens(text) {
		units = append(units, unit{
			start:   pos,
			end:     pos + len(tok),
			width:   its.TokenWidth(tok),
			newline: tok == "\n",
		})
	}
	return its.wrapUnits(text, units)
}

// WrapRaw 按字符折行，标签中的每个字符都计入宽度。
func (its *IgnorableTypeSetting) WrapRaw(text string) []string {
	return its.TypeSetting.Wrap(text)
}
