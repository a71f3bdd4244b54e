// Package opentyperenderer 基于 golang.org/x/image/font/opentype 的字体实现，
// 不依赖 canvas，适合只需要位图输出的场景。
package opentyperenderer

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/impaper/renderer"
)

// Font 包装 font.Face。font.Face 不能并发使用，访问时加锁。
type Font struct {
	mu      sync.Mutex
	face    font.Face
	ascent  fixed.Int26_6
	descent fixed.Int26_6
}

var _ renderer.Font = (*Font)(nil)

// NewLoader 创建使用 opentype 字体的加载器，相对路径以 baseDir 为根解析。
func NewLoader(baseDir string) *renderer.FontCache {
	return renderer.NewFontCache(baseDir, Parse)
}

// Parse 解析 TTF/OTF 数据。DPI 取 72，使 size 点恰好等于 size 像素。
func Parse(data []byte, size int) (renderer.Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	return &Font{face: face, ascent: metrics.Ascent, descent: metrics.Descent}, nil
}

// Bounds 返回 s 的像素包围盒：宽为前进宽度，高为上升部与下降部之和。
func (f *Font) Bounds(s string) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, s).Ceil(), (f.ascent + f.descent).Ceil()
}

// Draw 以 (x, y) 为左上角绘制 s。
func (f *Font) Draw(dst draw.Image, x, y int, s string, c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y+f.ascent.Ceil()),
	}
	d.DrawString(s)
}

// Close 释放字体面。
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}
