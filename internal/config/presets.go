package config

// Presets are named animation settings. Each only sets the pattern and
// speed; everything else comes from DefaultConfig.
var Presets = map[string]Preset{
	"default": {Pattern: "orbit", Speed: 0.05},
	"calm":    {Pattern: "breathing", Speed: 0.02},
	"frantic": {Pattern: "particles", Speed: 0.2},
	"reverse": {Pattern: "mandala", Speed: -0.05},
	"frozen":  {Pattern: "tunnel", Speed: 0},
	"trails":  {Pattern: "lissajous", Speed: 0.08},
	"drift":   {Pattern: "spiral", Speed: 0.03},
	"surf":    {Pattern: "wave", Speed: 0.1},
}

type Preset struct {
	Pattern string  `yaml:"pattern"`
	Speed   float64 `yaml:"speed"`
}

// GetPreset returns a default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Apply(p)
	return cfg
}

func (c *Config) Apply(p Preset) {
	c.Pattern = p.Pattern
	c.Speed = p.Speed
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
