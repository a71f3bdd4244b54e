package canvasrenderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ByLCY/impaper/fonts"
	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
)

func loadDefault(t *testing.T, size int) renderer.Font {
	t.Helper()
	font, err := NewLoader("").Load(fonts.DefaultPath, size)
	if err != nil {
		t.Fatalf("加载内置字体失败: %v", err)
	}
	return font
}

func TestFontBoxSize(t *testing.T) {
	small := layout.FontBoxSize(loadDefault(t, 14))
	if small.Width <= 0 || small.Height <= 0 {
		t.Fatalf("字体盒尺寸无效: %+v", small)
	}
	large := layout.FontBoxSize(loadDefault(t, 28))
	if large.Width <= small.Width || large.Height <= small.Height {
		t.Fatalf("字号翻倍后字体盒应变大: %+v -> %+v", small, large)
	}
}

// TestMonospaceAdvance 等宽字体中每个 ASCII 字符的前进宽度一致。
func TestMonospaceAdvance(t *testing.T) {
	font := loadDefault(t, 20)
	w1, _ := font.Bounds("i")
	w2, _ := font.Bounds("W")
	if w1 != w2 {
		t.Fatalf("等宽字体前进宽度不一致: i=%d W=%d", w1, w2)
	}
	w10, _ := font.Bounds("WWWWWWWWWW")
	if diff := w10 - 10*w2; diff < -5 || diff > 5 {
		t.Fatalf("十个字符宽度 %d 与单字符宽度 %d 不成比例", w10, w2)
	}
}

func TestDrawPaintsGlyphs(t *testing.T) {
	font := loadDefault(t, 24)
	img := renderer.NewCanvas(40, 40, renderer.Grayscale, color.Black)
	font.Draw(img, 4, 4, "M", color.White)

	gray := img.(*image.Gray)
	lit := 0
	for _, v := range gray.Pix {
		if v > 0x80 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("绘制后画布上没有亮像素")
	}
}

// TestDrawGrayKeepsBackground 灰度画布上绘制时只改动字形覆盖的像素。
func TestDrawGrayKeepsBackground(t *testing.T) {
	font := loadDefault(t, 24)
	bg := color.Gray{Y: 0x40}
	img := renderer.NewCanvas(60, 40, renderer.Grayscale, bg)
	font.Draw(img, 30, 4, "M", color.White)

	gray := img.(*image.Gray)
	for y := 0; y < 40; y++ {
		for x := 0; x < 28; x++ {
			if got := gray.GrayAt(x, y); got != bg {
				t.Fatalf("字形左侧像素 (%d,%d) 被改动: %v", x, y, got)
			}
		}
	}
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 30; x < 60; x++ {
			if gray.GrayAt(x, y).Y > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("字形区域没有亮像素")
	}
}

func TestDrawUsesColor(t *testing.T) {
	font := loadDefault(t, 24)
	img := renderer.NewCanvas(40, 40, renderer.RGB, color.Black)
	font.Draw(img, 4, 4, "M", color.RGBA{R: 0xff, A: 0xff})

	rgba := img.(*image.RGBA)
	red := false
	for i := 0; i < len(rgba.Pix); i += 4 {
		r, g, b := rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]
		if r > 0x80 && g < 0x40 && b < 0x40 {
			red = true
			break
		}
	}
	if !red {
		t.Fatalf("未找到红色像素")
	}
}

func TestParseCorruptFont(t *testing.T) {
	_, err := NewLoader("").Load("not-a-font.ttf", 14)
	if !errors.Is(err, renderer.ErrFontUnavailable) {
		t.Fatalf("应返回 ErrFontUnavailable, got %v", err)
	}
	if _, err := Parse([]byte("garbage"), 14); err == nil {
		t.Fatalf("损坏的字体数据应返回错误")
	}
}
