package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	metadataFile = "metadata.json"
	gifFile      = "animation.gif"
	svgFile      = "frames.svg"
)

var ErrRunClosed = errors.New("storage: run already closed")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Pattern   string             `json:"pattern"`
	Timestamp time.Time          `json:"timestamp"`
	Speed     float64            `json:"speed"`
	Baseline  float64            `json:"baseline"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Backend   string             `json:"backend"`
	HUD       bool               `json:"hud"`
	Artifacts []string           `json:"artifacts"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is an open render run. Frames are written as they arrive; the GIF
// and metadata are flushed by Close.
type Run struct {
	dir    string
	meta   RunMetadata
	anim   *gif.GIF
	delay  int
	closed bool
}

// Create makes a new run directory. ID and Timestamp are filled in.
func (s *Store) Create(meta RunMetadata) (*Run, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Pattern, now.UnixNano())
	meta.Timestamp = now
	meta.Frames = 0

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Run{dir: dir, meta: meta}, nil
}

func (r *Run) ID() string  { return r.meta.ID }
func (r *Run) Dir() string { return r.dir }

// EnableGIF collects every added frame into an animated GIF. delay is in
// hundredths of a second.
func (r *Run) EnableGIF(delay int) {
	if delay <= 0 {
		delay = 2
	}
	r.anim = &gif.GIF{LoopCount: 0}
	r.delay = delay
}

// AddFrame writes img as the next PNG in the sequence.
func (r *Run) AddFrame(img image.Image) error {
	if r.closed {
		return ErrRunClosed
	}
	name := fmt.Sprintf("frame_%05d.png", r.meta.Frames)
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	if r.anim != nil {
		r.anim.Image = append(r.anim.Image, quantize(img))
		r.anim.Delay = append(r.anim.Delay, r.delay)
	}
	r.meta.Frames++
	return nil
}

// CreateSVG opens the run's SVG artifact for writing.
func (r *Run) CreateSVG() (io.WriteCloser, error) {
	if r.closed {
		return nil, ErrRunClosed
	}
	f, err := os.Create(filepath.Join(r.dir, svgFile))
	if err != nil {
		return nil, err
	}
	r.addArtifact(svgFile)
	return f, nil
}

func (r *Run) addArtifact(name string) {
	for _, a := range r.meta.Artifacts {
		if a == name {
			return
		}
	}
	r.meta.Artifacts = append(r.meta.Artifacts, name)
}

// Close writes the GIF (if enabled) and metadata.json.
func (r *Run) Close(metrics map[string]float64) (*RunMetadata, error) {
	if r.closed {
		return nil, ErrRunClosed
	}
	r.closed = true
	r.meta.Metrics = metrics

	if r.anim != nil && len(r.anim.Image) > 0 {
		if err := r.writeGIF(); err != nil {
			return nil, err
		}
		r.addArtifact(gifFile)
	}

	f, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.meta); err != nil {
		return nil, err
	}
	meta := r.meta
	return &meta, nil
}

func (r *Run) writeGIF() error {
	f, err := os.Create(filepath.Join(r.dir, gifFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, r.anim)
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// List returns stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// FramePaths returns the PNG frames of a run in render order.
func (s *Store) FramePaths(runID string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.baseDir, runID, "frame_*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
