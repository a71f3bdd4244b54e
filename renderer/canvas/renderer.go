// Package canvasrenderer 基于 github.com/tdewolff/canvas 加载字体并把文字光栅化到位图上。
package canvasrenderer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/impaper/layout"
	"github.com/ByLCY/impaper/renderer"
)

// canvas 以毫米为坐标单位，光栅化时取 1px/mm，使坐标与像素一一对应。
var resolution = canvas.DPMM(1.0)

// Font 是按像素字号加载的 canvas 字体。不同颜色的字体面按需创建并缓存。
type Font struct {
	family *canvas.FontFamily
	sizePt float64

	mu    sync.Mutex
	faces map[color.RGBA]*canvas.FontFace
}

var _ renderer.Font = (*Font)(nil)

// NewLoader 创建使用 canvas 字体的加载器，相对路径以 baseDir 为根解析。
func NewLoader(baseDir string) *renderer.FontCache {
	return renderer.NewFontCache(baseDir, Parse)
}

// Parse 解析 TTF/OTF 数据，size 为像素字号。
func Parse(data []byte, size int) (renderer.Font, error) {
	family := canvas.NewFontFamily("impaper")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	return &Font{
		family: family,
		sizePt: layout.PxToCanvasPt(float64(size)),
		faces:  map[color.RGBA]*canvas.FontFace{},
	}, nil
}

// Bounds 返回 s 的像素包围盒：宽为前进宽度，高为上升部与下降部之和。
func (f *Font) Bounds(s string) (int, int) {
	face := f.face(color.RGBA{A: 0xff})
	metrics := face.Metrics()
	width := face.TextWidth(s)
	height := metrics.Ascent + math.Abs(metrics.Descent)
	return int(math.Round(width)), int(math.Round(height))
}

// Draw 以 (x, y) 为左上角绘制 s。
//
// 光栅化器只能写入 RGBA 位图，其他类型的 dst（如灰度图）先画到透明的临时画布上，再叠加到 dst。
func (f *Font) Draw(dst xdraw.Image, x, y int, s string, col color.Color) {
	if s == "" {
		return
	}
	bounds := dst.Bounds()
	c := canvas.New(float64(bounds.Dx()), float64(bounds.Dy()))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与位图保持左上角为原点

	face := f.face(col)
	// 基线位置：行顶部加上字体上升部
	baseline := float64(y-bounds.Min.Y) + face.Metrics().Ascent
	ctx.DrawText(float64(x-bounds.Min.X), baseline, canvas.NewTextLine(face, s, canvas.Left))

	if rgba, ok := dst.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		c.RenderTo(rasterizer.FromImage(rgba, resolution, canvas.LinearColorSpace{}))
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	c.RenderTo(rasterizer.FromImage(scratch, resolution, canvas.LinearColorSpace{}))
	xdraw.Draw(dst, bounds, scratch, image.Point{}, xdraw.Over)
}

func (f *Font) face(col color.Color) *canvas.FontFace {
	key := color.RGBAModel.Convert(col).(color.RGBA)
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	face := f.family.Face(f.sizePt, key, canvas.FontRegular, canvas.FontNormal)
	f.faces[key] = face
	return face
}
