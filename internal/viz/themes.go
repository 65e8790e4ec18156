package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/patternlab/internal/pattern"
)

// Theme colors the live view. Every theme is derived from the colors the
// patterns themselves draw with, so the chrome matches the canvas.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var white = color.NRGBA{255, 255, 255, 255}

// Themes lists the selectable themes in cycling order. The first one is the
// default.
var Themes = []Theme{
	newTheme("phosphor", pattern.Green, pattern.Cyan, pattern.Green),
	newTheme("neon", pattern.Magenta, pattern.Cyan, pattern.Green),
	newTheme("ice", pattern.Cyan, pattern.Green, pattern.Magenta),
	newTheme("ember", pattern.Red, pattern.Magenta, pattern.Cyan),
	newTheme("mono", white, white, pattern.Cyan),
}

func newTheme(name string, primary, secondary, accent color.Color) Theme {
	return Theme{
		Name:      name,
		Primary:   hex(primary),
		Secondary: hex(mix(secondary, pattern.Black, 0.2)),
		Accent:    hex(mix(accent, white, 0.4)),
		Text:      hex(mix(primary, white, 0.75)),
		Muted:     hex(mix(primary, pattern.Black, 0.6)),
		Success:   hex(pattern.Green),
		Warning:   hex(mix(pattern.Red, pattern.Green, 0.5)),
		Error:     hex(pattern.Red),
	}
}

// mix blends a toward b in Lab space; t=0 is a, t=1 is b.
func mix(a, b color.Color, t float64) color.Color {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return ca.BlendLab(cb, t).Clamped()
}

func hex(c color.Color) lipgloss.Color {
	cc, _ := colorful.MakeColor(c)
	return lipgloss.Color(cc.Hex())
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
