// Package renderer 定义绘制文本所需的字体与画布协作方。
package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/impaper/layout"
)

// ErrFontUnavailable 表示字体文件缺失、内置资源不存在或字体数据损坏。
var ErrFontUnavailable = errors.New("字体不可用")

// Font 是已按字号加载的字体。
type Font interface {
	layout.FontMeasurer
	// Draw 以 (x, y) 为文本左上角，用颜色 c 绘制 s。
	Draw(dst xdraw.Image, x, y int, s string, c color.Color)
}

// FontLoader 按字体路径与像素字号加载字体。
type FontLoader interface {
	Load(path string, size int) (Font, error)
}

// Mode 是画布的像素格式。
type Mode int

const (
	Grayscale Mode = iota // 单通道灰度
	RGB                   // 三通道彩色
)

func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "L"
	case RGB:
		return "RGB"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// NewCanvas 创建指定尺寸、像素格式与背景色的画布。
func NewCanvas(width, height int, mode Mode, bg color.Color) xdraw.Image {
	rect := image.Rect(0, 0, max(width, 0), max(height, 0))
	var img xdraw.Image
	switch mode {
	case RGB:
		img = image.NewRGBA(rect)
	default:
		img = image.NewGray(rect)
	}
	if bg == nil {
		bg = color.Black
	}
	xdraw.Draw(img, rect, image.NewUniform(bg), image.Point{}, xdraw.Src)
	return img
}

// EncodePNG 将绘制结果编码为 PNG。
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("图像为空")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return nil
}
