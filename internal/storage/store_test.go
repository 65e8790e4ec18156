package storage

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run, err := st.Create(RunMetadata{Pattern: "orbit", Speed: 0.05, Width: 8, Height: 6, Backend: "raster"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(run.ID(), "orbit_") {
		t.Errorf("unexpected run id %s", run.ID())
	}

	for i := 0; i < 3; i++ {
		if err := run.AddFrame(solid(color.Black)); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if _, err := run.Close(map[string]float64{"fps": 60}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	meta, err := st.Load(run.ID())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Pattern != "orbit" {
		t.Errorf("expected pattern orbit, got %s", meta.Pattern)
	}
	if meta.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", meta.Frames)
	}
	if meta.Metrics["fps"] != 60 {
		t.Errorf("expected fps 60, got %f", meta.Metrics["fps"])
	}

	paths, err := st.FramePaths(run.ID())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 || filepath.Base(paths[0]) != "frame_00000.png" {
		t.Errorf("unexpected frame paths %v", paths)
	}
}

func TestRunGIFAndSVG(t *testing.T) {
	st := New(t.TempDir())
	run, err := st.Create(RunMetadata{Pattern: "wave"})
	if err != nil {
		t.Fatal(err)
	}
	run.EnableGIF(0)

	run.AddFrame(solid(color.Black))
	run.AddFrame(solid(color.White))

	w, err := run.CreateSVG()
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("<svg></svg>"))
	w.Close()

	meta, err := run.Close(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(meta.Artifacts) != 2 {
		t.Errorf("expected svg and gif artifacts, got %v", meta.Artifacts)
	}

	f, err := os.Open(filepath.Join(run.Dir(), "animation.gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 2 {
		t.Errorf("expected 2 frames with delay 2, got %d / %v", len(anim.Image), anim.Delay)
	}
}

func TestRunClosedTwice(t *testing.T) {
	st := New(t.TempDir())
	run, _ := st.Create(RunMetadata{Pattern: "tunnel"})
	if _, err := run.Close(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := run.Close(nil); !errors.Is(err, ErrRunClosed) {
		t.Errorf("expected ErrRunClosed, got %v", err)
	}
	if err := run.AddFrame(solid(color.Black)); !errors.Is(err, ErrRunClosed) {
		t.Errorf("expected ErrRunClosed on add, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	for _, name := range []string{"orbit", "spiral"} {
		run, err := st.Create(RunMetadata{Pattern: name})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := run.Close(nil); err != nil {
			t.Fatal(err)
		}
	}
	os.MkdirAll(filepath.Join(dir, "junk"), 0755)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Pattern != "spiral" {
		t.Errorf("expected newest first, got %s", runs[0].Pattern)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}
