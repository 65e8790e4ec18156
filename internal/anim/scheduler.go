package anim

import (
	"context"
	"time"
)

// Scheduler delivers frame signals. A closed channel means no more frames.
// Implementations are not required to close it when ctx is done, so
// consumers select on ctx as well.
type Scheduler interface {
	Frames(ctx context.Context) <-chan time.Time
}

// TickerScheduler signals frames at a fixed rate. Its channel closes when
// ctx is done.
type TickerScheduler struct {
	interval time.Duration
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TickerScheduler) Interval() time.Duration { return s.interval }

func (s *TickerScheduler) Frames(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				// a slow frame drops ticks instead of queueing them
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// ManualScheduler signals a frame each time Fire is called. It ignores ctx;
// its channel closes only on Close.
type ManualScheduler struct {
	ch chan time.Time
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{ch: make(chan time.Time)}
}

func (m *ManualScheduler) Frames(ctx context.Context) <-chan time.Time { return m.ch }

// Fire blocks until the loop accepts the frame signal.
func (m *ManualScheduler) Fire() { m.ch <- time.Now() }

// Close ends the frame stream.
func (m *ManualScheduler) Close() { close(m.ch) }
