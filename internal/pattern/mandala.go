package pattern

import (
	"math"

	"github.com/san-kum/patternlab/internal/surface"
)

const (
	mandalaLayers = 5
	mandalaPetals = 12
)

func Mandala(t float64, s surface.Surface, w, h float64) {
	wipe(s, w, h)

	_ = surface.WithTransform(s, w/2, h/2, 0, func() error {
		for layer := 0; layer < mandalaLayers; layer++ {
			fl := float64(layer)
			radius := 50 + fl*40
			size := 20 - fl*2
			// outer layers turn slower
			spin := t * (1 - fl*0.1)
			col := HSL(math.Mod(fl*60+t*50, 360), 0.7, 0.6)

			for i := 0; i < mandalaPetals; i++ {
				angle := float64(i)/mandalaPetals*2*math.Pi + spin
				s.FillCircle(math.Cos(angle)*radius, math.Sin(angle)*radius, size, col)
			}
		}
		return nil
	})
}
