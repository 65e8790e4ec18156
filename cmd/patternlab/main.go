package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	width      int
	height     int
	speed      float64
	fps        int
	backend    string
	theme      string
	addr       string
	frames     int
	gifOut     bool
	svgOut     bool
	hudOut     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets every
// flag variable to its default.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "patternlab",
		Short:             "parametric animation lab",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		Args:              cobra.MaximumNArgs(1),
		RunE:              runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.IntVar(&width, "width", config.DefaultWidth, "surface width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "surface height in pixels")
	pf.Float64Var(&speed, "speed", anim.DefaultSpeed, "time added per frame")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.StringVar(&backend, "backend", "raster", "pixel backend (raster, gpu)")

	tuiCmd := &cobra.Command{
		Use:   "tui [pattern]",
		Short: "run a pattern in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	}

	serveCmd := &cobra.Command{
		Use:   "serve [pattern]",
		Short: "serve patterns to the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address")

	renderCmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "render frames to a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	renderCmd.Flags().BoolVar(&gifOut, "gif", false, "also write an animated gif")
	renderCmd.Flags().BoolVar(&svgOut, "svg", false, "also write the last frame as svg")
	renderCmd.Flags().BoolVar(&hudOut, "hud", false, "draw the status overlay on frames")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list patterns",
		RunE:  listPatterns,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored render runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [pattern]",
		Short: "benchmark pattern rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPatterns,
	}
	benchCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per pattern")

	playCmd := &cobra.Command{
		Use:   "play [scenario.yaml]",
		Short: "render a scripted scenario to a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&gifOut, "gif", false, "also write an animated gif")
	playCmd.Flags().BoolVar(&svgOut, "svg", false, "also write the last frame as svg")
	playCmd.Flags().BoolVar(&hudOut, "hud", false, "draw the status overlay on frames")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, serveCmd, renderCmd, listCmd, runsCmd, showCmd, presetsCmd, benchCmd, playCmd, initCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if logLevel == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// logToFile sends logs to patternlab.log under dir so they do not tear the
// terminal UI.
func logToFile(dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "patternlab.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
	return f, nil
}

// resolveConfig layers defaults, preset, config file, positional pattern
// and changed flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Pattern = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Surface.Width = width
	}
	if flags.Changed("height") {
		cfg.Surface.Height = height
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
		cfg.Server.FPS = fps
	}
	if flags.Changed("backend") {
		cfg.Surface.Backend = backend
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.TUI.Theme = theme
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Render.Frames = frames
	}
	if flags.Lookup("gif") != nil {
		cfg.Render.GIF = cfg.Render.GIF || gifOut
		cfg.Render.SVG = cfg.Render.SVG || svgOut
		cfg.Render.HUD = cfg.Render.HUD || hudOut
	}
	if flags.Changed("data") || cfg.Render.DataDir == "" {
		cfg.Render.DataDir = dataDir
	}
	if cfg.Log.Level != "" && !flags.Changed("log-level") {
		if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
