package pattern

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/patternlab/internal/surface"
)

var (
	Black   = color.NRGBA{0, 0, 0, 255}
	Green   = color.NRGBA{0, 255, 0, 255}
	Cyan    = color.NRGBA{0, 255, 255, 255}
	Magenta = color.NRGBA{255, 0, 255, 255}
	Red     = color.NRGBA{255, 0, 0, 255}
)

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

// HSL converts hue in degrees (any range) and saturation/lightness in
// [0, 1] to an opaque colour.
func HSL(h, s, l float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return color.NRGBA{r, g, b, 255}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wipe paints the whole surface opaque black.
func wipe(s surface.Surface, w, h float64) {
	s.FillRect(0, 0, w, h, Black)
}

// fade darkens the surface by a translucent black fill, leaving trails.
func fade(s surface.Surface, w, h, alpha float64) {
	s.FillRect(0, 0, w, h, WithAlpha(Black, alpha))
}
