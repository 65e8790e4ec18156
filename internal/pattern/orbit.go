package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const orbitRadius = 150

func Orbit(t float64, s surface.Surface, w, h float64) {
	wipe(s, w, h)
	x := w/2 + math.Cos(t)*orbitRadius
	y := h/2 + math.Sin(t)*orbitRadius
	s.FillCircle(x, y, 20, Green)
}
