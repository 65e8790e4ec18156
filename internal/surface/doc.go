// Package surface provides the 2D drawing targets patterns render onto.
//
// Every backend implements [Surface]:
//
//   - [Raster]: anti-aliased RGBA raster built on fogleman/gg
//   - [GPU]: raster built on gogpu/gg's software pipeline
//   - [SVG]: streaming SVG document built on ajstarks/svgo
//   - [Recorder]: call log used to assert drawing sequences in tests
//
// # Transforms
//
// Radial layouts draw inside [WithTransform], which pushes the transform
// state, applies translate + rotate, and pops on every exit path:
//
//	err := surface.WithTransform(s, cx, cy, angle, func() error {
//	    s.FillCircle(0, 100, 20, col)
//	    return nil
//	})
package surface
