package surface

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fogleman/gg"
)

// Raster is an anti-aliased RGBA surface backed by a gg.Context.
type Raster struct {
	dc *gg.Context
	w  float64
	h  float64
}

func NewRaster(w, h int) *Raster {
	return &Raster{
		dc: gg.NewContext(w, h),
		w:  float64(w),
		h:  float64(h),
	}
}

func (r *Raster) Size() (float64, float64) { return r.w, r.h }

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) FillCircle(cx, cy, rad float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(cx, cy, rad)
	r.dc.Fill()
}

func (r *Raster) StrokeCircle(cx, cy, rad, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawCircle(cx, cy, rad)
	r.dc.Stroke()
}

func (r *Raster) StrokePath(pts []Point, lineWidth float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.Stroke()
}

func (r *Raster) Push()                  { r.dc.Push() }
func (r *Raster) Pop()                   { r.dc.Pop() }
func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(rad float64)     { r.dc.Rotate(rad) }

// Context exposes the underlying gg context for overlays.
func (r *Raster) Context() *gg.Context { return r.dc }

// Snapshot copies the current pixels.
func (r *Raster) Snapshot() *image.RGBA {
	return copyRGBA(r.dc.Image())
}

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func copyRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
