package metrics

import (
	"sort"
	"time"

	"github.com/san-kum/patternlab/internal/anim"
)

// Metric accumulates a single figure over rendered frames.
type Metric interface {
	Name() string
	Observe(st anim.State, took time.Duration)
	Value() float64
	Reset()
}

// Collector fans frame notifications out to a set of metrics. It
// implements anim.Observer.
type Collector struct {
	metrics []Metric
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

// Default returns the metrics shown by the live views and bench.
func Default(fps int) *Collector {
	return NewCollector(
		NewFrameRate(),
		NewLatency(),
		NewBudget(fps),
	)
}

func (c *Collector) Add(m Metric) { c.metrics = append(c.metrics, m) }

func (c *Collector) OnTick(st anim.State, took time.Duration) {
	for _, m := range c.metrics {
		m.Observe(st, took)
	}
}

func (c *Collector) Values() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names sorted for stable output.
func (c *Collector) Names() []string {
	names := make([]string, 0, len(c.metrics))
	for _, m := range c.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (c *Collector) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
}
