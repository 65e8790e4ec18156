package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/patternlab/internal/anim"
	"github.com/san-kum/patternlab/internal/config"
	"github.com/san-kum/patternlab/internal/metrics"
	"github.com/san-kum/patternlab/internal/pattern"
	"github.com/san-kum/patternlab/internal/storage"
	"github.com/san-kum/patternlab/internal/surface"
	"github.com/spf13/cobra"
)

func listPatterns(cmd *cobra.Command, args []string) error {
	reg := pattern.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSUMMARY")
	for i, d := range reg.Descriptors() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, d.Name, d.Summary)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.Render.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tFRAMES\tSPEED\tSIZE\tBACKEND\tARTIFACTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%dx%d\t%s\t%s\n",
			run.ID,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			anim.FormatSpeed(run.Speed, run.Baseline),
			run.Width, run.Height,
			run.Backend,
			strings.Join(run.Artifacts, ","),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	meta, err := storage.New(cfg.Render.DataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATTERN\tSPEED")
	for _, name := range names {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Pattern, anim.FormatSpeed(p.Speed, anim.Baseline))
	}
	return w.Flush()
}

type benchResult struct {
	name    string
	frames  uint64
	elapsed time.Duration
	values  map[string]float64
	trace   []float64
}

func benchPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	reg := pattern.NewRegistry()
	names := reg.Names()
	if len(args) > 0 {
		if !reg.Has(args[0]) {
			return fmt.Errorf("%w: %q", anim.ErrUnknownPattern, args[0])
		}
		names = []string{args[0]}
	}

	fmt.Printf("benchmarking %d frames at %dx%d (%s)\n\n", cfg.Render.Frames, cfg.Surface.Width, cfg.Surface.Height, cfg.Surface.Backend)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tFRAMES\tTIME\tFRAMES/SEC\tRENDER_MS\tIN_BUDGET")

	var last benchResult
	for _, name := range names {
		res, err := benchOne(reg, name, cfg)
		if err != nil {
			return err
		}
		rate := 0.0
		if secs := res.elapsed.Seconds(); secs > 0 {
			rate = float64(res.frames) / secs
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.3f\t%.0f%%\n",
			res.name, res.frames, res.elapsed.Round(time.Millisecond), rate,
			res.values["render_ms"], res.values["in_budget"]*100)
		last = res
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(names) == 1 && len(last.trace) > 1 {
		graph := asciigraph.Plot(last.trace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("render ms per frame"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

type traceMetric struct {
	ms []float64
}

func (t *traceMetric) Name() string { return "trace" }
func (t *traceMetric) Observe(st anim.State, took time.Duration) {
	t.ms = append(t.ms, float64(took.Microseconds())/1000)
}
func (t *traceMetric) Value() float64 { return float64(len(t.ms)) }
func (t *traceMetric) Reset()         { t.ms = t.ms[:0] }

// benchOne drives a loop from a manual scheduler so the numbers include the
// loop's own per-frame work.
func benchOne(reg *pattern.Registry, name string, cfg *config.Config) (benchResult, error) {
	img, err := surface.NewBackend(cfg.Surface.Backend, cfg.Surface.Width, cfg.Surface.Height)
	if err != nil {
		return benchResult{}, err
	}

	trace := &traceMetric{}
	collector := metrics.Default(cfg.FPS)
	collector.Add(trace)
	ctrl, err := anim.New(reg, img,
		anim.WithDefaultPattern(name),
		anim.WithSpeed(cfg.Speed),
		anim.WithBaseline(cfg.Baseline),
		anim.WithObserver(collector),
	)
	if err != nil {
		return benchResult{}, err
	}

	sched := anim.NewManualScheduler()
	loop := anim.NewLoop(ctrl, sched)
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	start := time.Now()
	for i := 0; i < cfg.Render.Frames; i++ {
		sched.Fire()
	}
	sched.Close()
	err = <-done
	elapsed := time.Since(start)
	if c, ok := img.(interface{ Close() error }); ok {
		c.Close()
	}
	if err != nil && !errors.Is(err, anim.ErrLoopStopped) {
		return benchResult{}, err
	}

	return benchResult{
		name:    name,
		frames:  loop.Frames(),
		elapsed: elapsed,
		values:  collector.Values(),
		trace:   trace.ms,
	}, nil
}
