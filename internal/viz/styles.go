package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	muted  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(panelWidth),
		header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		ok:     lipgloss.NewStyle().Foreground(t.Success),
		warn:   lipgloss.NewStyle().Foreground(t.Warning),
		err:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// SliderBar renders a horizontal slider with the knob at pos in [0, 1].
func SliderBar(pos float64, width int) string {
	if width < 2 {
		width = 2
	}
	knob := int(pos*float64(width-1) + 0.5)
	if knob < 0 {
		knob = 0
	}
	if knob > width-1 {
		knob = width - 1
	}
	return strings.Repeat("━", knob) + "●" + strings.Repeat("─", width-1-knob)
}

func separator(width int) string {
	if width < 7 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}
