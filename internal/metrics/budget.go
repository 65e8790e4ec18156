package metrics

import (
	"time"

	"github.com/san-kum/patternlab/internal/anim"
)

// Budget is the fraction of frames whose render finished within one frame
// interval.
type Budget struct {
	name       string
	limit      time.Duration
	violations int
	samples    int
}

func NewBudget(fps int) *Budget {
	if fps <= 0 {
		fps = 60
	}
	return &Budget{
		name:  "in_budget",
		limit: time.Second / time.Duration(fps),
	}
}

func (b *Budget) Name() string {
	return b.name
}

func (b *Budget) Observe(st anim.State, took time.Duration) {
	b.samples++
	if took > b.limit {
		b.violations++
	}
}

func (b *Budget) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Budget) Reset() {
	b.violations = 0
	b.samples = 0
}
