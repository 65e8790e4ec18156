package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const waveStep = 2

func Wave(t float64, s surface.Surface, w, h float64) {
	wipe(s, w, h)
	cy := h / 2
	s.StrokePath(sweep(w, func(x float64) float64 {
		return cy + math.Sin(x*0.02+t)*100
	}), 2, Green)
	s.StrokePath(sweep(w, func(x float64) float64 {
		return cy + math.Sin(x*0.03-t*1.5)*60
	}), 2, Red)
}

// sweep samples f every waveStep pixels across [0, w).
func sweep(w float64, f func(x float64) float64) []surface.Point {
	pts := make([]surface.Point, 0, int(w/waveStep)+1)
	for x := 0.0; x < w; x += waveStep {
		pts = append(pts, surface.Point{X: x, Y: f(x)})
	}
	return pts
}
