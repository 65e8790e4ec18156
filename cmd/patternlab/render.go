package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/automation"
	"github.com/san-kum/patternlab/internal/config"
	"github.com/san-kum/patternlab/internal/hud"
	"github.com/san-kum/patternlab/internal/metrics"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/storage"
	"github.com/san-kum/patternlab/internal/surface"
	"github.com/spf13/cobra"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meta, err := render(ctx, cfg)
	printRun(cfg, meta)
	return err
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meta, err := play(ctx, cfg, sc)
	printRun(cfg, meta)
	return err
}

func printRun(cfg *config.Config, meta *storage.RunMetadata) {
	if meta == nil {
		return
	}
	fmt.Printf("run %s: %d frames of %s at %s -> %s\n",
		meta.ID, meta.Frames, meta.Pattern, anim.FormatSpeed(meta.Speed, meta.Baseline),
		storage.New(cfg.Render.DataDir).Dir())
}

// session owns everything one stored run needs: the pixel backend, the
// controller drawing into it and the run receiving frames.
type session struct {
	cfg       *config.Config
	img       surface.Image
	ctrl      *anim.Controller
	collector *metrics.Collector
	overlay   *hud.Overlay
	run       *storage.Run
}

func newSession(cfg *config.Config) (*session, error) {
	img, err := surface.NewBackend(cfg.Surface.Backend, cfg.Surface.Width, cfg.Surface.Height)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, img: img, collector: metrics.Default(cfg.FPS)}

	opts := append(cfg.ControllerOptions(),
		anim.WithLogger(log.Logger),
		anim.WithObserver(s.collector),
	)
	s.ctrl, err = anim.New(pattern.NewRegistry(), img, opts...)
	if err != nil {
		s.release()
		return nil, err
	}

	if cfg.Render.HUD {
		s.overlay, err = hud.New(hud.DefaultFontSize)
		if err != nil {
			s.release()
			return nil, err
		}
	}

	st := storage.New(cfg.Render.DataDir)
	if err := st.Init(); err != nil {
		s.release()
		return nil, err
	}
	backendName := cfg.Surface.Backend
	if backendName == "" {
		backendName = surface.BackendRaster
	}
	s.run, err = st.Create(storage.RunMetadata{
		Pattern:  cfg.Pattern,
		Speed:    cfg.Speed,
		Baseline: cfg.Baseline,
		Width:    cfg.Surface.Width,
		Height:   cfg.Surface.Height,
		Backend:  backendName,
		HUD:      cfg.Render.HUD,
	})
	if err != nil {
		s.release()
		return nil, err
	}
	if cfg.Render.GIF {
		s.run.EnableGIF(gifDelay(cfg.FPS))
	}
	return s, nil
}

// gifDelay converts a frame rate to a GIF frame delay in hundredths of a
// second. Most viewers treat delays below 2 as 10, so 2 is the floor.
func gifDelay(fps int) int {
	return max(2, int(math.Round(100/float64(fps))))
}

// capture stores the current pixels as the next frame. st is the state the
// frame was drawn with.
func (s *session) capture(st anim.State, label string) error {
	frame := s.img.Snapshot()
	if s.overlay != nil {
		s.overlay.Draw(gg.NewContextForRGBA(frame), hud.Lines(st, label))
	}
	return s.run.AddFrame(frame)
}

// finish writes the optional SVG of the last drawn frame and closes the run.
func (s *session) finish(last anim.State) (*storage.RunMetadata, error) {
	defer s.release()
	if s.cfg.Render.SVG {
		d, ok := s.ctrl.Registry().Lookup(last.Pattern)
		if ok {
			if err := writeSVG(s.run, d, last.Elapsed, s.cfg.Surface.Width, s.cfg.Surface.Height); err != nil {
				s.run.Close(s.collector.Values())
				return nil, err
			}
		}
	}
	return s.run.Close(s.collector.Values())
}

func (s *session) release() {
	if s.overlay != nil {
		s.overlay.Close()
	}
	if c, ok := s.img.(io.Closer); ok {
		c.Close()
	}
}

// render ticks a controller cfg.Render.Frames times and stores every frame.
// A cancelled ctx stops early and still closes the run.
func render(ctx context.Context, cfg *config.Config) (*storage.RunMetadata, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("run", s.run.ID()).Str("pattern", cfg.Pattern).Int("frames", cfg.Render.Frames).Msg("render starting")

	last := s.ctrl.State()
	for i := 0; i < cfg.Render.Frames; i++ {
		if ctx.Err() != nil {
			log.Warn().Int("frame", i).Msg("render interrupted")
			break
		}
		last = s.ctrl.State()
		label := s.ctrl.SpeedLabel()
		s.ctrl.Tick()
		if err := s.capture(last, label); err != nil {
			s.run.Close(s.collector.Values())
			s.release()
			return nil, err
		}
	}

	meta, err := s.finish(last)
	if err != nil {
		return nil, err
	}
	return meta, ctx.Err()
}

// play renders a scenario into a single run.
func play(ctx context.Context, cfg *config.Config, sc *automation.Scenario) (*storage.RunMetadata, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("run", s.run.ID()).Str("scenario", sc.Name).Int("frames", sc.TotalFrames()).Msg("scenario starting")

	var last anim.State
	_, err = automation.Play(ctx, sc, s.ctrl, func(st anim.State) error {
		// st is after the tick; the frame was drawn one speed step earlier
		last = st
		last.Elapsed -= st.Speed
		return s.capture(last, anim.FormatSpeed(st.Speed, s.ctrl.Baseline()))
	})

	meta, ferr := s.finish(last)
	if ferr != nil {
		return nil, ferr
	}
	return meta, err
}

// writeSVG renders the pattern once more at time t.
func writeSVG(run *storage.Run, d pattern.Descriptor, t float64, w, h int) error {
	out, err := run.CreateSVG()
	if err != nil {
		return err
	}
	defer out.Close()

	s := surface.NewSVG(out, w, h)
	s.Start(fmt.Sprintf("%s t=%.2f", d.Name, t))
	d.Render(t, s, float64(w), float64(h))
	s.End()
	return nil
}
