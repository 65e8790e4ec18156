package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const breathingDots = 8

func Breathing(t float64, s surface.Surface, w, h float64) {
	wipe(s, w, h)
	radius := 100 * (1 + math.Sin(t*2)*0.3)

	_ = surface.WithTransform(s, w/2, h/2, t, func() error {
		for i := 0; i < breathingDots; i++ {
			angle := float64(i) / breathingDots * 2 * math.Pi
			s.FillCircle(math.Cos(angle)*radius, math.Sin(angle)*radius, 20, HSL(float64(i)*45, 0.7, 0.5))
		}
		return nil
	})
}
