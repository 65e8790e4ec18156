package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/surface"
	"github.com/san-kum/patternlab/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultFPS     = 60
	DefaultFrames  = 300
	DefaultAddr    = ":8080"
	DefaultDataDir = ".patternlab"
	DefaultTheme   = "phosphor"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Pattern  string        `yaml:"pattern"`
	Speed    float64       `yaml:"speed"`
	Baseline float64       `yaml:"baseline"`
	FPS      int           `yaml:"fps"`
	Surface  SurfaceConfig `yaml:"surface"`
	Render   RenderConfig  `yaml:"render"`
	Server   ServerConfig  `yaml:"server"`
	TUI      TUIConfig     `yaml:"tui"`
	Log      LogConfig     `yaml:"log"`
}

type SurfaceConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Backend string `yaml:"backend"`
}

type RenderConfig struct {
	Frames  int    `yaml:"frames"`
	DataDir string `yaml:"data_dir"`
	HUD     bool   `yaml:"hud"`
	GIF     bool   `yaml:"gif"`
	SVG     bool   `yaml:"svg"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	FPS  int    `yaml:"fps"`
}

type TUIConfig struct {
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Pattern:  pattern.Default,
		Speed:    anim.DefaultSpeed,
		Baseline: anim.Baseline,
		FPS:      DefaultFPS,
		Surface: SurfaceConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Backend: surface.BackendRaster,
		},
		Render: RenderConfig{
			Frames:  DefaultFrames,
			DataDir: DefaultDataDir,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
			FPS:  30,
		},
		TUI: TUIConfig{Theme: DefaultTheme},
		Log: LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values a controller or surface would reject.
func (c *Config) Validate() error {
	if !pattern.NewRegistry().Has(c.Pattern) {
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfig, c.Pattern)
	}
	if math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) {
		return fmt.Errorf("%w: speed must be finite", ErrInvalidConfig)
	}
	if math.IsNaN(c.Baseline) || c.Baseline <= 0 || math.IsInf(c.Baseline, 0) {
		return fmt.Errorf("%w: baseline must be positive, got %v", ErrInvalidConfig, c.Baseline)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidConfig, c.Surface.Width, c.Surface.Height)
	}
	switch c.Surface.Backend {
	case "", surface.BackendRaster, surface.BackendGPU:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Surface.Backend)
	}
	if c.Render.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative", ErrInvalidConfig)
	}
	if themes := viz.ThemeNames(); c.TUI.Theme != "" && !slices.Contains(themes, c.TUI.Theme) {
		return fmt.Errorf("%w: unknown theme %q (want one of %s)", ErrInvalidConfig, c.TUI.Theme, strings.Join(themes, ", "))
	}
	return nil
}

// ControllerOptions converts the animation settings into controller options.
func (c *Config) ControllerOptions() []anim.Option {
	return []anim.Option{
		anim.WithDefaultPattern(c.Pattern),
		anim.WithSpeed(c.Speed),
		anim.WithBaseline(c.Baseline),
	}
}
