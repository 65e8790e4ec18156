package anim

import "time"

const (
	// DefaultSpeed is the slider's starting value.
	DefaultSpeed = 0.05
	// Baseline is the speed shown as "1.0x".
	Baseline = 0.05

	SliderMin  = 0.0
	SliderMax  = 0.2
	SliderStep = 0.01
)

// State is the controller's animation clock.
type State struct {
	Pattern string
	Elapsed float64
	Speed   float64
}

// Observer is notified after every rendered frame with the state the frame
// was rendered at and how long rendering took.
type Observer interface {
	OnTick(st State, took time.Duration)
}
