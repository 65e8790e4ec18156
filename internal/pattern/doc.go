// Package pattern holds the fixed set of animation routines.
//
// A pattern is a pure function of elapsed time and surface size: given the
// same time and dimensions it issues the same drawing calls. Patterns that
// leave trails do so with partially transparent full-surface fills and keep
// no state of their own.
//
//	reg := pattern.NewRegistry()
//	d, _ := reg.Lookup("orbit")
//	d.Render(t, surf, w, h)
package pattern
