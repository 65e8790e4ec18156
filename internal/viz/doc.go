// Package viz renders a running pattern in the terminal.
//
// The live view uses Bubble Tea. Each tick advances the controller, which
// draws into an off-screen raster; the raster is then sampled down onto a
// braille [Canvas] and shown beside a status panel.
//
// # Key Bindings
//
//	1-8   - Select pattern by position
//	←/→   - Previous/next pattern
//	↑/↓   - Move the speed slider by one step
//	0     - Freeze time
//	T     - Cycle color themes
//	C     - Copy the status line to the clipboard
//	S     - Save a PNG snapshot of the current frame
//	?     - Show help overlay
//	Q     - Quit
package viz
