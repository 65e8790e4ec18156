// Package anim drives pattern animation.
//
// The package defines the controller and its frame loop:
//
//   - [State]: active pattern, elapsed time, speed per frame
//   - [Controller]: selects patterns, sets speed, renders one frame per [Controller.Tick]
//   - [Loop]: runs Tick once per frame signal from a [Scheduler]
//   - [Command]: input applied between frames
//
// # Example
//
//	reg := pattern.NewRegistry()
//	ctrl, _ := anim.New(reg, surface.NewRaster(800, 600))
//	loop := anim.NewLoop(ctrl, anim.NewTickerScheduler(60))
//	err := loop.Run(ctx)
//
// # Thread Safety
//
// Controller is NOT safe for concurrent use. A running Loop owns its
// controller; other goroutines reach it only through [Loop.Submit].
package anim
