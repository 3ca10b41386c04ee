package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/lookahead/internal/anim"
	"github.com/verte-zerg/lookahead/internal/benchchart"
	"github.com/verte-zerg/lookahead/internal/model"
)

// Frames renders n images of the eased transition between the P1 and P2
// layouts of the collapse view into dir, in order. from and to are progress
// values. It returns the written paths.
func Frames(records []model.BenchmarkRecord, from, to float64, n int, dir string, opts Options) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("frame count must be > 0")
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	tr := anim.Transition{From: from, To: to, Duration: anim.DefaultDuration, Ease: anim.EaseInOut}
	paths := make([]string, 0, n)
	for i, progress := range tr.Samples(n) {
		snap := benchchart.Layout(records, model.ModeCollapse, progress)
		path := filepath.Join(dir, fmt.Sprintf("frame-%03d.%s", i, format))
		if err := WriteFile(path, snap, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FrameDelay is the display time per frame for n frames spanning the
// default transition.
func FrameDelay(n int) time.Duration {
	if n <= 1 {
		return anim.DefaultDuration
	}
	return anim.DefaultDuration / time.Duration(n-1)
}

// WriteFile renders snap into path, replacing it atomically.
func WriteFile(path string, snap benchchart.Snapshot, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := Render(tmpFile, snap, opts); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
