package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const (
	spiralMaxRadius = 300
	spiralFade      = 0.1
)

// SpiralRadius is the distance from the centre at time t. It wraps back to
// zero every 150 time units (and goes negative for negative t, like the
// remainder it is built from).
func SpiralRadius(t float64) float64 {
	return math.Mod(t*2, spiralMaxRadius)
}

func Spiral(t float64, s surface.Surface, w, h float64) {
	fade(s, w, h, spiralFade)
	r := SpiralRadius(t)
	x := w/2 + math.Cos(t*3)*r
	y := h/2 + math.Sin(t*3)*r
	s.FillCircle(x, y, 8, Magenta)
}
