package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const (
	lissajousA     = 3
	lissajousB     = 2
	lissajousScale = 200
	lissajousFade  = 0.05
)

func Lissajous(t float64, s surface.Surface, w, h float64) {
	fade(s, w, h, lissajousFade)
	x := w/2 + math.Sin(t*lissajousA)*lissajousScale
	y := h/2 + math.Sin(t*lissajousB)*lissajousScale
	s.FillCircle(x, y, 5, Cyan)
}
