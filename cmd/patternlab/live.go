package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/metrics"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/surface"
	"github.com/san-kum/patternlab/internal/viz"
	"github.com/san-kum/patternlab/internal/web"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	closer, err := logToFile(cfg.Render.DataDir)
	if err != nil {
		return err
	}
	defer closer.Close()

	raster := surface.NewRaster(cfg.Surface.Width, cfg.Surface.Height)
	collector := metrics.Default(cfg.FPS)
	opts := append(cfg.ControllerOptions(),
		anim.WithLogger(log.Logger),
		anim.WithObserver(collector),
	)
	ctrl, err := anim.New(pattern.NewRegistry(), raster, opts...)
	if err != nil {
		return err
	}

	m := viz.NewModel(ctrl, raster, collector, viz.Options{
		FPS:         cfg.FPS,
		Theme:       cfg.TUI.Theme,
		SnapshotDir: filepath.Join(cfg.Render.DataDir, "snapshots"),
	})

	log.Info().Str("pattern", cfg.Pattern).Float64("speed", cfg.Speed).Msg("tui starting")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	raster := surface.NewRaster(cfg.Surface.Width, cfg.Surface.Height)
	collector := metrics.Default(cfg.Server.FPS)
	opts := append(cfg.ControllerOptions(),
		anim.WithLogger(log.With().Str("component", "anim").Logger()),
		anim.WithObserver(collector),
	)
	ctrl, err := anim.New(pattern.NewRegistry(), raster, opts...)
	if err != nil {
		return err
	}

	srv := web.New(ctrl, raster, anim.NewTickerScheduler(cfg.Server.FPS))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = srv.Run(ctx, cfg.Server.Addr)
	ev := log.Info()
	for name, v := range collector.Values() {
		ev = ev.Float64(name, v)
	}
	ev.Msg("final metrics")
	return err
}
