package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const particleCount = 50

func Particles(t float64, s surface.Surface, w, h float64) {
	wipe(s, w, h)
	cx, cy := w/2, h/2
	for i := 0; i < particleCount; i++ {
		fi := float64(i)
		angle := fi/particleCount*2*math.Pi + t
		r := 150 + math.Sin(t*2+fi)*50
		size := 3 + math.Sin(t*3+fi)*2
		hue := math.Mod(fi*360/particleCount+t*50, 360)
		s.FillCircle(cx+math.Cos(angle)*r, cy+math.Sin(angle)*r, size, HSL(hue, 0.7, 0.6))
	}
}
