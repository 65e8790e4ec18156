package anim

import (
	"context"
	"sync/atomic"
)

const commandQueueSize = 64

// Loop calls Tick once per frame signal. Commands submitted from other
// goroutines are applied at the start of the next frame, never mid-draw.
type Loop struct {
	ctrl    *Controller
	sched   Scheduler
	cmds    chan Command
	frames  atomic.Uint64
	onFrame func(State)
	onError func(Command, error)
}

type LoopOption func(*Loop)

// OnFrame registers a hook run on the loop goroutine after every tick.
func OnFrame(fn func(State)) LoopOption { return func(l *Loop) { l.onFrame = fn } }

// OnCommandError registers a hook for commands that failed to apply.
func OnCommandError(fn func(Command, error)) LoopOption {
	return func(l *Loop) { l.onError = fn }
}

func NewLoop(ctrl *Controller, sched Scheduler, opts ...LoopOption) *Loop {
	l := &Loop{
		ctrl:  ctrl,
		sched: sched,
		cmds:  make(chan Command, commandQueueSize),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit queues a command without blocking.
func (l *Loop) Submit(cmd Command) error {
	select {
	case l.cmds <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Frames reports how many frames have been rendered.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Run renders frames until ctx is cancelled or the scheduler stops. A frame
// in progress always completes before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	frames := l.sched.Frames(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return ErrLoopStopped
			}
			l.drain()
			l.ctrl.Tick()
			l.frames.Add(1)
			if l.onFrame != nil {
				l.onFrame(l.ctrl.State())
			}
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case cmd := <-l.cmds:
			if err := cmd.Apply(l.ctrl); err != nil && l.onError != nil {
				l.onError(cmd, err)
			}
		default:
			return
		}
	}
}
