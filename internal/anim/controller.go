package anim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/surface"
)

type Controller struct {
	reg       *pattern.Registry
	surf      surface.Surface
	state     State
	active    pattern.Descriptor
	baseline  float64
	log       zerolog.Logger
	observers []Observer
}

type Option func(*options)

type options struct {
	pattern   string
	speed     float64
	baseline  float64
	log       zerolog.Logger
	observers []Observer
}

func WithDefaultPattern(name string) Option { return func(o *options) { o.pattern = name } }
func WithSpeed(v float64) Option            { return func(o *options) { o.speed = v } }
func WithBaseline(v float64) Option         { return func(o *options) { o.baseline = v } }
func WithLogger(l zerolog.Logger) Option    { return func(o *options) { o.log = l } }
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// New creates a controller drawing onto surf with the registry's patterns.
func New(reg *pattern.Registry, surf surface.Surface, opts ...Option) (*Controller, error) {
	o := options{
		pattern:  pattern.Default,
		speed:    DefaultSpeed,
		baseline: Baseline,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseline <= 0 || math.IsNaN(o.baseline) || math.IsInf(o.baseline, 0) {
		return nil, fmt.Errorf("%w: baseline %v", ErrInvalidSpeed, o.baseline)
	}

	d, ok := reg.Lookup(o.pattern)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, o.pattern)
	}

	c := &Controller{
		reg:       reg,
		surf:      surf,
		active:    d,
		baseline:  o.baseline,
		log:       o.log,
		observers: o.observers,
	}
	c.state.Pattern = d.Name
	c.SetSpeed(o.speed)
	return c, nil
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// SelectPattern switches the active pattern and restarts its clock.
// Unknown names leave the controller untouched.
func (c *Controller) SelectPattern(name string) error {
	d, ok := c.reg.Lookup(name)
	if !ok {
		c.log.Warn().Str("pattern", name).Strs("known", c.reg.Names()).Msg("unknown pattern ignored")
		return fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	c.active = d
	c.state.Pattern = name
	c.state.Elapsed = 0
	c.log.Debug().Str("pattern", name).Msg("pattern selected")
	return nil
}

// SetSpeed stores the time added per frame. Negative values run patterns
// backwards; NaN and infinities become 0.
func (c *Controller) SetSpeed(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.log.Warn().Float64("speed", v).Msg("non-finite speed coerced to 0")
		v = 0
	}
	c.state.Speed = v
}

// SetSpeedValue parses slider text. Unparseable input sets speed to 0 and
// is reported.
func (c *Controller) SetSpeedValue(raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		c.SetSpeed(0)
		return fmt.Errorf("%w: %q", ErrInvalidSpeed, raw)
	}
	c.SetSpeed(v)
	return nil
}

// SpeedLabel formats the speed relative to the baseline, e.g. "1.0x".
func (c *Controller) SpeedLabel() string {
	return FormatSpeed(c.state.Speed, c.baseline)
}

func FormatSpeed(speed, baseline float64) string {
	return fmt.Sprintf("%.1fx", speed/baseline)
}

// Tick renders the active pattern at the current elapsed time, then
// advances the clock by the speed.
func (c *Controller) Tick() {
	w, h := c.surf.Size()
	start := time.Now()
	c.render(w, h)
	took := time.Since(start)

	for _, o := range c.observers {
		o.OnTick(c.state, took)
	}
	c.state.Elapsed += c.state.Speed
}

func (c *Controller) render(w, h float64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().
				Str("pattern", c.active.Name).
				Float64("t", c.state.Elapsed).
				Interface("panic", r).
				Msg("render failed; frame dropped")
		}
	}()
	c.active.Render(c.state.Elapsed, c.surf, w, h)
}

func (c *Controller) State() State                { return c.state }
func (c *Controller) Surface() surface.Surface    { return c.surf }
func (c *Controller) Registry() *pattern.Registry { return c.reg }
func (c *Controller) Baseline() float64           { return c.baseline }
func (c *Controller) Active() pattern.Descriptor  { return c.active }
