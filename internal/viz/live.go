package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/metrics"
	"github.com/san-kum/patternlab/internal/surface"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 38
	historyCapacity = 240
	sampleThreshold = 48
)

type TickMsg time.Time

type Options struct {
	FPS         int
	Theme       string
	SnapshotDir string
	// Copy writes text to the clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

// Model drives a controller from Bubble Tea ticks and shows the raster it
// draws into as braille.
type Model struct {
	ctrl        *anim.Controller
	raster      *surface.Raster
	collector   *metrics.Collector
	canvas      *Canvas
	theme       Theme
	fps         int
	snapshotDir string
	copy        func(string) error
	elapsed     []float64
	message     string
	messageErr  bool
	showHelp    bool
}

// NewModel builds a live view. The controller must draw into raster.
func NewModel(ctrl *anim.Controller, raster *surface.Raster, collector *metrics.Collector, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "."
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	return Model{
		ctrl:        ctrl,
		raster:      raster,
		collector:   collector,
		canvas:      NewCanvas(width, height),
		theme:       GetTheme(opts.Theme),
		fps:         opts.FPS,
		snapshotDir: opts.SnapshotDir,
		copy:        opts.Copy,
		elapsed:     make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.selectIndex(int(key[0] - '1'))
		case "left", "h":
			m.cycle(-1)
		case "right", "l":
			m.cycle(1)
		case "up", "k":
			m.nudgeSpeed(1)
		case "down", "j":
			m.nudgeSpeed(-1)
		case "0":
			m.ctrl.SetSpeed(0)
			m.notify("frozen", false)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "c":
			m.copyStatus()
		case "s":
			m.saveSnapshot()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.ctrl.Tick()
	m.elapsed = append(m.elapsed, m.ctrl.State().Elapsed)
	if len(m.elapsed) > historyCapacity {
		m.elapsed = m.elapsed[1:]
	}
	m.draw()
}

func (m *Model) draw() {
	m.canvas.Sample(m.raster.Snapshot(), sampleThreshold)
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	m.canvas.DrawLine(0, 0, 0, ch-1)
	m.canvas.DrawLine(cw-1, 0, cw-1, ch-1)
}

func (m *Model) resize(w, h int) {
	cw := w - panelWidth - 6
	ch := h - 2
	if cw < 10 || ch < 4 {
		return
	}
	m.canvas = NewCanvas(cw, ch)
	m.draw()
}

func (m *Model) selectIndex(i int) {
	names := m.ctrl.Registry().Names()
	if i < 0 || i >= len(names) {
		return
	}
	m.selectPattern(names[i])
}

func (m *Model) cycle(dir int) {
	names := m.ctrl.Registry().Names()
	if len(names) == 0 {
		return
	}
	cur := 0
	for i, n := range names {
		if n == m.ctrl.State().Pattern {
			cur = i
			break
		}
	}
	next := ((cur+dir)%len(names) + len(names)) % len(names)
	m.selectPattern(names[next])
}

func (m *Model) selectPattern(name string) {
	if err := m.ctrl.SelectPattern(name); err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.elapsed = m.elapsed[:0]
	if m.collector != nil {
		m.collector.Reset()
	}
	m.message = ""
}

// nudgeSpeed moves the slider by one step, keeping it on the step grid
// and inside the slider range.
func (m *Model) nudgeSpeed(dir int) {
	steps := math.Round(m.ctrl.State().Speed/anim.SliderStep) + float64(dir)
	v := steps * anim.SliderStep
	v = math.Max(anim.SliderMin, math.Min(anim.SliderMax, v))
	m.ctrl.SetSpeed(math.Round(v*100) / 100)
}

// StatusLine is the one-line summary copied to the clipboard.
func (m Model) StatusLine() string {
	st := m.ctrl.State()
	return fmt.Sprintf("%s speed=%s t=%.2f", st.Pattern, m.ctrl.SpeedLabel(), st.Elapsed)
}

func (m *Model) copyStatus() {
	if err := m.copy(m.StatusLine()); err != nil {
		log.Warn().Err(err).Msg("clipboard copy failed")
		m.notify("copy failed: "+err.Error(), true)
		return
	}
	m.notify("copied status", false)
}

func (m *Model) saveSnapshot() {
	if err := os.MkdirAll(m.snapshotDir, 0755); err != nil {
		m.notify(err.Error(), true)
		return
	}
	name := fmt.Sprintf("%s_%d.png", m.ctrl.State().Pattern, time.Now().UnixNano())
	path := filepath.Join(m.snapshotDir, name)
	if err := m.raster.SavePNG(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("snapshot failed")
		m.notify("snapshot failed: "+err.Error(), true)
		return
	}
	log.Info().Str("path", path).Msg("snapshot saved")
	m.notify("saved "+path, false)
}

func (m *Model) notify(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// View renders the canvas and status panel.
func (m Model) View() string {
	st := newStyles(m.theme)
	state := m.ctrl.State()
	desc := m.ctrl.Active()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(state.Pattern)) + "\n")
	s.WriteString(st.muted.Render(desc.Summary) + "\n\n")

	status := st.ok.Render("RUNNING")
	if state.Speed == 0 {
		status = st.warn.Render("FROZEN")
	} else if state.Speed < 0 {
		status = st.warn.Render("REVERSE")
	}
	s.WriteString(status + "\n\n")

	pos := (state.Speed - anim.SliderMin) / (anim.SliderMax - anim.SliderMin)
	s.WriteString(st.label.Render("Speed") + st.value.Render(m.ctrl.SpeedLabel()) + "\n")
	s.WriteString(st.active.Render(SliderBar(pos, panelWidth-6)) + "\n")
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2f", state.Elapsed)) + "\n")
	if m.collector != nil {
		for _, name := range m.collector.Names() {
			v := m.collector.Values()[name]
			s.WriteString(st.label.Render(name) + st.value.Render(fmt.Sprintf("%.2f", v)) + "\n")
		}
	}

	if len(m.elapsed) > 1 {
		chart := asciigraph.Plot(m.elapsed, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption("elapsed"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString("\nPATTERNS\n")
	for i, name := range m.ctrl.Registry().Names() {
		line := fmt.Sprintf("%d %s", i+1, name)
		if name == state.Pattern {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.muted.Render(line) + "\n")
		}
	}

	if m.message != "" {
		if m.messageErr {
			s.WriteString("\n" + st.err.Render(m.message) + "\n")
		} else {
			s.WriteString("\n" + st.ok.Render(m.message) + "\n")
		}
	}
	s.WriteString(st.help.Render(separator(panelWidth-6) + "\n1-8/←→:Pattern ↑↓:Speed 0:Freeze\nT:Theme C:Copy S:Snap ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1-8      - Select pattern           ║
║  ←/→      - Previous/next pattern    ║
║  ↑/↓      - Speed slider ±0.01       ║
║  0        - Freeze time              ║
║  T        - Cycle themes             ║
║  C        - Copy status to clipboard ║
║  S        - Save PNG snapshot        ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
