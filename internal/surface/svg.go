package surface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG streams drawing calls as SVG elements. Nothing is ever erased:
// opaque clears and fade overlays are emitted as full-size rectangles, so
// rendering several frames into one document layers them the same way a
// raster surface accumulates them.
type SVG struct {
	canvas *svg.SVG
	w      int
	h      int
	groups []int
	open   int
}

func NewSVG(out io.Writer, w, h int) *SVG {
	return &SVG{canvas: svg.New(out), w: w, h: h}
}

// Start writes the document header.
func (s *SVG) Start(title string) {
	s.canvas.Start(s.w, s.h)
	if title != "" {
		s.canvas.Title(title)
	}
}

// End closes any open groups and the document.
func (s *SVG) End() {
	for s.open > 0 {
		s.canvas.Gend()
		s.open--
	}
	s.groups = s.groups[:0]
	s.canvas.End()
}

func (s *SVG) Size() (float64, float64) { return float64(s.w), float64(s.h) }

func (s *SVG) FillRect(x, y, w, h float64, c color.Color) {
	s.canvas.Rect(px(x), px(y), px(w), px(h), fillStyle(c))
}

func (s *SVG) FillCircle(cx, cy, r float64, c color.Color) {
	s.canvas.Circle(px(cx), px(cy), px(r), fillStyle(c))
}

func (s *SVG) StrokeCircle(cx, cy, r, lineWidth float64, c color.Color) {
	s.canvas.Circle(px(cx), px(cy), px(r), strokeStyle(c, lineWidth))
}

func (s *SVG) StrokePath(pts []Point, lineWidth float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	s.canvas.Polyline(xs, ys, strokeStyle(c, lineWidth))
}

func (s *SVG) Push() { s.groups = append(s.groups, 0) }

func (s *SVG) Pop() {
	if len(s.groups) == 0 {
		return
	}
	n := s.groups[len(s.groups)-1]
	s.groups = s.groups[:len(s.groups)-1]
	for ; n > 0; n-- {
		s.canvas.Gend()
		s.open--
	}
}

func (s *SVG) Translate(x, y float64) {
	s.transform(fmt.Sprintf("translate(%.2f,%.2f)", x, y))
}

func (s *SVG) Rotate(rad float64) {
	s.transform(fmt.Sprintf("rotate(%.4f)", rad*180/math.Pi))
}

func (s *SVG) transform(t string) {
	s.canvas.Gtransform(t)
	s.open++
	if len(s.groups) > 0 {
		s.groups[len(s.groups)-1]++
	}
}

func px(v float64) int { return int(math.Round(v)) }

func hexAlpha(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

func fillStyle(c color.Color) string {
	hex, a := hexAlpha(c)
	if a >= 1 {
		return "fill:" + hex
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", hex, a)
}

func strokeStyle(c color.Color, width float64) string {
	hex, a := hexAlpha(c)
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%.1f", hex, a, width)
}
