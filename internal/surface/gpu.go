package surface

import (
	"image"
	"image/color"

	gpugg "github.com/gogpu/gg"
	"github.com/rs/zerolog/log"
)

// GPU is a raster surface drawn through gogpu/gg. Without a registered
// accelerator it runs on the library's software renderer.
type GPU struct {
	dc *gpugg.Context
	w  float64
	h  float64
}

func NewGPU(w, h int) *GPU {
	return &GPU{
		dc: gpugg.NewContext(w, h),
		w:  float64(w),
		h:  float64(h),
	}
}

func (g *GPU) Size() (float64, float64) { return g.w, g.h }

func (g *GPU) FillRect(x, y, w, h float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawRectangle(x, y, w, h)
	g.check(g.dc.Fill())
}

func (g *GPU) FillCircle(cx, cy, r float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawCircle(cx, cy, r)
	g.check(g.dc.Fill())
}

func (g *GPU) StrokeCircle(cx, cy, r, lineWidth float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(lineWidth)
	g.dc.DrawCircle(cx, cy, r)
	g.check(g.dc.Stroke())
}

func (g *GPU) StrokePath(pts []Point, lineWidth float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	g.dc.SetColor(c)
	g.dc.SetLineWidth(lineWidth)
	g.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		g.dc.LineTo(p.X, p.Y)
	}
	g.check(g.dc.Stroke())
}

func (g *GPU) Push()                  { g.dc.Push() }
func (g *GPU) Pop()                   { g.dc.Pop() }
func (g *GPU) Translate(x, y float64) { g.dc.Translate(x, y) }
func (g *GPU) Rotate(rad float64)     { g.dc.Rotate(rad) }

func (g *GPU) Snapshot() *image.RGBA {
	return copyRGBA(g.dc.Image())
}

// Close releases renderer resources.
func (g *GPU) Close() error { return g.dc.Close() }

// a failed fill only loses that primitive; the frame carries on
func (g *GPU) check(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("gpu surface draw")
	}
}
