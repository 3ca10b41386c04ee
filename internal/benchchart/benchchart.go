// Package benchchart implements the benchmark chart state machine: the
// current view mode, the animated progress between P1 and P2, and the
// layout derived from both.
package benchchart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/lookahead/internal/anim"
	"github.com/verte-zerg/lookahead/internal/chart"
	"github.com/verte-zerg/lookahead/internal/dataset"
	"github.com/verte-zerg/lookahead/internal/model"
)

// ErrUnknownMode is returned by SetMode for modes outside the closed set.
var ErrUnknownMode = errors.New("benchchart: unknown view mode")

// Decay mode uses this fixed range unless a value falls outside it, in
// which case the range grows in decayAxisStep increments.
const (
	decayAxisMin  = -25
	decayAxisMax  = 5
	decayAxisStep = 5
)

// Timeline captions shown above the chart in collapse mode.
const (
	TimelineStart = "P1 — 2021 (In-Sample)"
	TimelineEnd   = "P2 — 2024 (Out-of-Sample)"
)

// Options tunes the mode change animation. A zero Duration switches
// instantly.
type Options struct {
	Duration time.Duration
	FPS      int
	Ease     anim.Curve
}

// Snapshot is everything needed to draw the chart at one instant.
type Snapshot struct {
	Mode     model.ViewMode
	Progress float64
	Bars     []chart.Bar
	Axis     chart.Axis
	// Timeline is set in collapse mode.
	Timeline [2]string
}

// Chart owns the view mode and the progress animator.
type Chart struct {
	records []model.BenchmarkRecord
	mode    model.ViewMode
	anim    *anim.Animator
}

// New validates records and returns a chart in decay mode at progress 0.
func New(records []model.BenchmarkRecord, opts Options) (*Chart, error) {
	if err := dataset.Validate(records); err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}
	duration := opts.Duration
	if duration < 0 {
		return nil, fmt.Errorf("failed to build chart: negative duration %s", duration)
	}
	ease := opts.Ease
	if ease == nil {
		ease = anim.EaseInOut
	}
	return &Chart{
		records: dataset.Clone(records),
		mode:    model.ModeDecay,
		anim:    anim.NewAnimator(model.ModeDecay.Target(), duration, ease, opts.FPS),
	}, nil
}

// Mode returns the current view mode.
func (c *Chart) Mode() model.ViewMode {
	return c.mode
}

// Progress returns the animated position between P1 (0) and P2 (1).
func (c *Chart) Progress() float64 {
	return c.anim.Value()
}

// Animating reports whether a transition is in flight.
func (c *Chart) Animating() bool {
	return c.anim.Active()
}

// Animator exposes the progress animator for frame scheduling.
func (c *Chart) Animator() *anim.Animator {
	return c.anim
}

// Records returns a copy of the chart's dataset.
func (c *Chart) Records() []model.BenchmarkRecord {
	return dataset.Clone(c.records)
}

// SetMode switches the view mode and retargets the animation toward the
// mode's progress target. It reports whether anything changed.
func (c *Chart) SetMode(mode model.ViewMode, now time.Time) (bool, error) {
	if !mode.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
	if mode == c.mode {
		return false, nil
	}
	c.mode = mode
	c.anim.Retarget(mode.Target(), now)
	return true, nil
}

// Step advances the animation to now and reports whether it is still running.
func (c *Chart) Step(now time.Time) bool {
	return c.anim.Step(now)
}

// Snapshot lays out the chart at the current mode and progress.
func (c *Chart) Snapshot() Snapshot {
	return Layout(c.records, c.mode, c.anim.Value())
}

// Detail describes the bar at index. It reports false when no bar is
// focused there, in which case nothing should be drawn.
func (c *Chart) Detail(index int) (model.Detail, bool) {
	if index < 0 || index >= len(c.records) {
		return model.Detail{}, false
	}
	r := c.records[index]
	return model.Detail{
		Label:   r.Name,
		Mode:    c.mode,
		Decay:   r.Decay,
		AlphaP1: r.AlphaP1,
		AlphaP2: r.AlphaP2,
		IsPiT:   r.IsPiT,
	}, true
}

// Layout computes bars and axis for records in mode at progress.
func Layout(records []model.BenchmarkRecord, mode model.ViewMode, progress float64) Snapshot {
	bars := make([]chart.Bar, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		v := r.Decay
		if mode == model.ModeCollapse {
			v = dataset.Interpolate(r, progress)
		}
		values[i] = v.InexactFloat64()
		bars[i] = chart.Bar{Label: r.Name, Value: values[i], Tone: toneFor(r)}
	}
	snap := Snapshot{Mode: mode, Progress: progress, Bars: bars}
	if mode == model.ModeCollapse {
		snap.Axis = chart.AutoAxis(values)
		snap.Timeline = [2]string{TimelineStart, TimelineEnd}
	} else {
		snap.Axis = decayAxis(values)
	}
	return snap
}

func decayAxis(values []float64) chart.Axis {
	lo, hi := float64(decayAxisMin), float64(decayAxisMax)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = math.Floor(v/decayAxisStep) * decayAxisStep
		}
		if v > hi {
			hi = math.Ceil(v/decayAxisStep) * decayAxisStep
		}
	}
	return chart.FixedAxis(lo, hi)
}

func toneFor(r model.BenchmarkRecord) chart.Tone {
	if r.IsPiT {
		return chart.TonePiT
	}
	return chart.ToneStandard
}
