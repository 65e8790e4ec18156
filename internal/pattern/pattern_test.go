package pattern

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/patternlab/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testW = 800.0
	testH = 600.0
)

func record(fn Func, t float64) *surface.Recorder {
	rec := surface.NewRecorder(testW, testH)
	fn(t, rec, testW, testH)
	return rec
}

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, []string{
		"orbit", "lissajous", "spiral", "wave",
		"particles", "breathing", "mandala", "tunnel",
	}, reg.Names())
	assert.Equal(t, 8, reg.Len())
	assert.True(t, reg.Has(Default))

	d, ok := reg.Lookup("tunnel")
	require.True(t, ok)
	assert.Equal(t, "tunnel", d.Name)
	assert.NotNil(t, d.Render)

	_, ok = reg.Lookup("vortex")
	assert.False(t, ok)
}

func TestRegistryRegister(t *testing.T) {
	reg := NewEmptyRegistry()
	require.NoError(t, reg.Register(Descriptor{Name: "dot", Render: Orbit}))

	err := reg.Register(Descriptor{Name: "dot", Render: Spiral})
	assert.ErrorIs(t, err, ErrDuplicatePattern)

	assert.ErrorIs(t, reg.Register(Descriptor{Name: "", Render: Orbit}), ErrInvalidDescriptor)
	assert.ErrorIs(t, reg.Register(Descriptor{Name: "nil"}), ErrInvalidDescriptor)
	assert.Equal(t, 1, reg.Len())
}

func TestNamesIsACopy(t *testing.T) {
	reg := NewRegistry()
	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "orbit", reg.Names()[0])
}

func TestPatternsAreDeterministic(t *testing.T) {
	times := []float64{0, 0.05, 1.3, 42.7, -3.2, 1000.01}

	for _, d := range NewRegistry().Descriptors() {
		for _, tm := range times {
			a := surface.NewRaster(int(testW), int(testH))
			b := surface.NewRaster(int(testW), int(testH))
			d.Render(tm, a, testW, testH)
			d.Render(tm, b, testW, testH)

			assert.True(t, bytes.Equal(a.Snapshot().Pix, b.Snapshot().Pix),
				"%s at t=%v rendered differently", d.Name, tm)
			assert.Equal(t, record(d.Render, tm).Ops(), record(d.Render, tm).Ops(),
				"%s at t=%v issued different calls", d.Name, tm)
		}
	}
}

func TestPatternsLeaveTransformBalanced(t *testing.T) {
	for _, d := range NewRegistry().Descriptors() {
		rec := record(d.Render, 2.5)
		assert.Equal(t, 0, rec.Depth(), d.Name)
		assert.Equal(t, rec.Count(surface.OpPush), rec.Count(surface.OpPop), d.Name)
	}
}

func TestClearPolicies(t *testing.T) {
	expected := map[string]uint8{
		"orbit":     255,
		"lissajous": 13,
		"spiral":    26,
		"wave":      255,
		"particles": 255,
		"breathing": 255,
		"mandala":   255,
		"tunnel":    26,
	}
	for _, d := range NewRegistry().Descriptors() {
		first := record(d.Render, 1).Ops()[0]
		require.Equal(t, surface.OpFillRect, first.Kind, d.Name)
		assert.Equal(t, []float64{0, 0, testW, testH}, first.Args, d.Name)
		assert.Equal(t, expected[d.Name], first.Color.(color.NRGBA).A, d.Name)
	}
}

func TestOrbitAtZero(t *testing.T) {
	circles := record(Orbit, 0).Filter(surface.OpFillCircle)
	require.Len(t, circles, 1)
	assert.InDeltaSlice(t, []float64{testW/2 + 150, testH / 2, 20}, circles[0].Args, 1e-9)
	assert.Equal(t, Green, circles[0].Color)
}

func TestLissajousPosition(t *testing.T) {
	tm := 0.7
	c := record(Lissajous, tm).Filter(surface.OpFillCircle)[0]
	assert.InDelta(t, testW/2+math.Sin(3*tm)*200, c.Args[0], 1e-9)
	assert.InDelta(t, testH/2+math.Sin(2*tm)*200, c.Args[1], 1e-9)
}

func TestSpiralRadiusWraps(t *testing.T) {
	assert.Equal(t, 0.0, SpiralRadius(0))
	assert.InDelta(t, 20.0, SpiralRadius(10), 1e-9)
	assert.InDelta(t, 0.0, SpiralRadius(150), 1e-9)
	assert.InDelta(t, 100.0, SpiralRadius(200), 1e-9)
}

func TestWaveSweepsWidth(t *testing.T) {
	paths := record(Wave, 0).Filter(surface.OpStrokePath)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Len(t, p.Points, int(testW/2))
		assert.Equal(t, 0.0, p.Points[0].X)
		assert.Equal(t, testW-2, p.Points[len(p.Points)-1].X)
	}
	assert.Equal(t, Green, paths[0].Color)
	assert.Equal(t, Red, paths[1].Color)
	assert.InDelta(t, testH/2, paths[0].Points[0].Y, 1e-9)
}

func TestParticlesCount(t *testing.T) {
	circles := record(Particles, 3).Filter(surface.OpFillCircle)
	assert.Len(t, circles, 50)
	for _, c := range circles {
		assert.GreaterOrEqual(t, c.Args[2], 1.0)
		assert.LessOrEqual(t, c.Args[2], 5.0)
	}
}

func TestBreathingRotatesGroup(t *testing.T) {
	rec := record(Breathing, 1.25)
	rot := rec.Filter(surface.OpRotate)
	require.Len(t, rot, 1)
	assert.Equal(t, 1.25, rot[0].Args[0])

	circles := rec.Filter(surface.OpFillCircle)
	require.Len(t, circles, 8)
	radius := 100 * (1 + math.Sin(2.5)*0.3)
	for _, c := range circles {
		assert.Equal(t, 1, c.Depth)
		assert.InDelta(t, radius, math.Hypot(c.Args[0], c.Args[1]), 1e-9)
	}
}

func TestMandalaLayers(t *testing.T) {
	circles := record(Mandala, 0).Filter(surface.OpFillCircle)
	require.Len(t, circles, 60)
	assert.Equal(t, 20.0, circles[0].Args[2])
	assert.Equal(t, 12.0, circles[59].Args[2])
	assert.InDelta(t, 210.0, math.Hypot(circles[59].Args[0], circles[59].Args[1]), 1e-9)
}

func TestTunnelSuppressesInnerRings(t *testing.T) {
	assert.Equal(t, 0.0, RingRadius(0, 0))
	assert.False(t, RingVisible(RingRadius(0, 0)))
	assert.False(t, RingVisible(20))
	assert.True(t, RingVisible(20.5))

	rings := record(Tunnel, 0).Filter(surface.OpStrokeCircle)
	assert.Len(t, rings, 26)
	for _, r := range rings {
		assert.Greater(t, r.Args[2], float64(TunnelMinRadius))
	}
}

func TestTunnelAlphaFallsWithRadius(t *testing.T) {
	rings := record(Tunnel, 0).Filter(surface.OpStrokeCircle)
	near := rings[0].Color.(color.NRGBA)
	far := rings[len(rings)-1].Color.(color.NRGBA)
	assert.InDelta(t, 40.0, rings[0].Args[2], 1e-9)
	assert.InDelta(t, 230, int(near.A), 1)
	assert.Less(t, far.A, uint8(255))
}

func TestHSL(t *testing.T) {
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, HSL(0, 1, 0.5))
	assert.Equal(t, HSL(300, 0.7, 0.6), HSL(-60, 0.7, 0.6))
	assert.Equal(t, HSL(45, 0.7, 0.5), HSL(405, 0.7, 0.5))
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, uint8(13), WithAlpha(Black, 0.05).A)
	assert.Equal(t, uint8(0), WithAlpha(Black, -1).A)
	assert.Equal(t, uint8(255), WithAlpha(Black, 2).A)
}
