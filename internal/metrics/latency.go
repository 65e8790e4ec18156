package metrics

import (
	"time"

	"github.com/san-kum/patternlab/internal/anim"
)

// Latency is the mean render time per frame in milliseconds.
type Latency struct {
	name    string
	sum     time.Duration
	samples int
}

func NewLatency() *Latency {
	return &Latency{
		name: "render_ms",
	}
}

func (l *Latency) Name() string {
	return l.name
}

func (l *Latency) Observe(st anim.State, took time.Duration) {
	l.sum += took
	l.samples++
}

func (l *Latency) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.sum.Microseconds()) / 1000 / float64(l.samples)
}

func (l *Latency) Reset() {
	l.sum = 0
	l.samples = 0
}
