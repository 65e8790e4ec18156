package anim

import "errors"

var (
	// ErrUnknownPattern indicates a selection of a name not in the registry.
	ErrUnknownPattern = errors.New("anim: unknown pattern")

	// ErrInvalidSpeed indicates speed input that is not a finite number.
	ErrInvalidSpeed = errors.New("anim: invalid speed")

	// ErrQueueFull indicates a command was dropped because the loop is behind.
	ErrQueueFull = errors.New("anim: command queue full")

	// ErrLoopStopped indicates the scheduler stopped delivering frames.
	ErrLoopStopped = errors.New("anim: frame source closed")
)
