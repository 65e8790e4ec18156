package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const (
	tunnelRings     = 30
	tunnelDepth     = 400
	TunnelMinRadius = 20
	tunnelFade      = 0.1
)

// RingRadius is the radius of ring i at time t.
func RingRadius(t float64, i int) float64 {
	return math.Mod(t*50+float64(i)*20, tunnelDepth)
}

// RingVisible reports whether a ring of radius r is drawn.
func RingVisible(r float64) bool { return r > TunnelMinRadius }

func Tunnel(t float64, s surface.Surface, w, h float64) {
	fade(s, w, h, tunnelFade)
	cx, cy := w/2, h/2
	for i := 0; i < tunnelRings; i++ {
		r := RingRadius(t, i)
		if !RingVisible(r) {
			continue
		}
		s.StrokeCircle(cx, cy, r, 3, WithAlpha(Green, 1-r/tunnelDepth))
	}
}
