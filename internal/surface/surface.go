package surface

import (
	"fmt"
	"image"
	"image/color"
)

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Surface is the set of drawing primitives a pattern may issue.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, lineWidth float64, c color.Color)
	StrokePath(pts []Point, lineWidth float64, c color.Color)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(rad float64)
}

// WithTransform runs fn with the origin moved to (tx, ty) and the axes
// rotated by rot radians. The pushed state is popped before WithTransform
// returns, including when fn panics.
func WithTransform(s Surface, tx, ty, rot float64, fn func() error) error {
	s.Push()
	defer s.Pop()
	s.Translate(tx, ty)
	s.Rotate(rot)
	return fn()
}

// Backend names accepted by NewBackend.
const (
	BackendRaster = "raster"
	BackendGPU    = "gpu"
)

// Image is a surface that exposes its pixels.
type Image interface {
	Surface
	Snapshot() *image.RGBA
}

// NewBackend creates a pixel surface of the given kind.
func NewBackend(kind string, w, h int) (Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("surface: invalid size %dx%d", w, h)
	}
	switch kind {
	case "", BackendRaster:
		return NewRaster(w, h), nil
	case BackendGPU:
		return NewGPU(w, h), nil
	default:
		return nil, fmt.Errorf("surface: unknown backend %q", kind)
	}
}

// Backends lists the names accepted by NewBackend.
func Backends() []string {
	return []string{BackendRaster, BackendGPU}
}
