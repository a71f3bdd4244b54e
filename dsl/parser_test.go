package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/impaper/dsl"
)

const sampleDSL = `
// 示例配置
render Banner v1 {
  font {
    src: "package:///gomono.ttf"
    size: 10.5pt
  }

  typesetting { line-width: 40; indentation: ">>>" }

  layout {
    margin: [6, 6, 6, 6]
    padding: 2
    spacing: 2px
  }

  colors {
    foreground: #FFFFFF
    background: #000
    reset-tag: "<Reset/>"
    color Red = #FF0000
    color Green #00FF00
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Banner" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "font,typesetting,layout,colors" {
		t.Fatalf("unexpected section order: %s", got)
	}

	font := doc.Sections[0].Block()
	if len(font.Statements) != 2 {
		t.Fatalf("font statements: %+v", font.Statements)
	}
	src := font.Statements[0].Assignment
	if src == nil || src.Key != "src" || string(*src.Value.String) != "package:///gomono.ttf" {
		t.Fatalf("unexpected src assignment: %+v", font.Statements[0])
	}
	size := font.Statements[1].Assignment
	if size == nil || size.Value.Number == nil || *size.Value.Number != "10.5pt" {
		t.Fatalf("unexpected size assignment: %+v", font.Statements[1])
	}

	ts := doc.Sections[1].Block()
	if len(ts.Statements) != 2 || ts.Statements[0].Assignment.Key != "line-width" {
		t.Fatalf("unexpected typesetting block: %+v", ts.Statements)
	}

	layout := doc.Sections[2].Block()
	margin := layout.Statements[0].Assignment
	if margin == nil || margin.Value.Array == nil || len(margin.Value.Array.Values) != 4 {
		t.Fatalf("margin should be an array of 4, got %+v", layout.Statements[0])
	}

	colors := doc.Sections[3].Block()
	if len(colors.Statements) != 5 {
		t.Fatalf("expected 5 color statements, got %d", len(colors.Statements))
	}
	fg := colors.Statements[0].Assignment
	if fg == nil || fg.Value.Color == nil || *fg.Value.Color != "#FFFFFF" {
		t.Fatalf("unexpected foreground: %+v", colors.Statements[0])
	}
	bg := colors.Statements[1].Assignment
	if bg == nil || bg.Value.Color == nil || *bg.Value.Color != "#000" {
		t.Fatalf("unexpected background: %+v", colors.Statements[1])
	}
	red := colors.Statements[3].Command
	if red == nil || red.Name != "color" || len(red.Args) != 3 {
		t.Fatalf("unexpected color command: %+v", colors.Statements[3])
	}
	if red.Args[0].Value != "Red" || red.Args[1].Value != "=" || red.Args[2].Value != "#FF0000" {
		t.Fatalf("unexpected color args: %+v", red.Args)
	}
	green := colors.Statements[4].Command
	if green == nil || len(green.Args) != 2 || green.Args[1].Type != "Color" {
		t.Fatalf("unexpected color command: %+v", colors.Statements[4])
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := dsl.ParseString(`render X { font { src: } }`); err == nil {
		t.Fatalf("缺少值时应返回错误")
	}
	if _, err := dsl.ParseString(`doc X v1 { }`); err == nil {
		t.Fatalf("未知根节点应返回错误")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := dsl.Parse("empty.impaper", strings.NewReader("render Empty {}\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Version != "" || len(doc.Sections) != 0 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}
