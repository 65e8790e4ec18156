package metrics

import (
	"time"

	"github.com/san-kum/patternlab/internal/anim"
)

// FrameRate measures delivered frames per second from wall-clock gaps
// between ticks, smoothed exponentially.
type FrameRate struct {
	name   string
	now    func() time.Time
	last   time.Time
	fps    float64
	frames int
}

const frameRateSmoothing = 0.1

func NewFrameRate() *FrameRate {
	return newFrameRateWithClock(time.Now)
}

func newFrameRateWithClock(now func() time.Time) *FrameRate {
	return &FrameRate{name: "fps", now: now}
}

func (f *FrameRate) Name() string {
	return f.name
}

func (f *FrameRate) Observe(st anim.State, took time.Duration) {
	now := f.now()
	if f.frames > 0 {
		gap := now.Sub(f.last).Seconds()
		if gap > 0 {
			inst := 1 / gap
			if f.frames == 1 {
				f.fps = inst
			} else {
				f.fps += (inst - f.fps) * frameRateSmoothing
			}
		}
	}
	f.last = now
	f.frames++
}

func (f *FrameRate) Value() float64 {
	return f.fps
}

func (f *FrameRate) Reset() {
	f.fps = 0
	f.frames = 0
	f.last = time.Time{}
}
