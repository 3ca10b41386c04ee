package benchchart

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/lookahead/internal/anim"
	"github.com/verte-zerg/lookahead/internal/chart"
	"github.com/verte-zerg/lookahead/internal/dataset"
	"github.com/verte-zerg/lookahead/internal/model"
)

func newChart(t *testing.T) *Chart {
	t.Helper()
	c, err := New(dataset.Default(), Options{Duration: anim.DefaultDuration})
	if err != nil {
		t.Fatalf("new chart: %v", err)
	}
	return c
}

func decayValues(t *testing.T) []float64 {
	t.Helper()
	records := dataset.Default()
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Decay.InexactFloat64()
	}
	return out
}

func barValues(s Snapshot) []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Value
	}
	return out
}

func TestNewStartsInDecayMode(t *testing.T) {
	c := newChart(t)
	if c.Mode() != model.ModeDecay || c.Progress() != 0 || c.Animating() {
		t.Fatalf("unexpected initial state: mode=%s progress=%v", c.Mode(), c.Progress())
	}
	snap := c.Snapshot()
	if snap.Axis != chart.FixedAxis(-25, 5) {
		t.Fatalf("unexpected decay axis: %+v", snap.Axis)
	}
	if !reflect.DeepEqual(barValues(snap), decayValues(t)) {
		t.Fatalf("expected decay bars, got %v", barValues(snap))
	}
	if snap.Timeline != [2]string{} {
		t.Fatalf("expected no timeline in decay mode")
	}
}

func TestNewRejectsInvalidDataset(t *testing.T) {
	records := dataset.Default()
	records[0].Decay = decimal.RequireFromString("-17.00")
	if _, err := New(records, Options{}); !errors.Is(err, dataset.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	c := newChart(t)
	changed, err := c.SetMode(model.ViewMode("comparison"), time.Unix(0, 0))
	if !errors.Is(err, ErrUnknownMode) || changed {
		t.Fatalf("expected ErrUnknownMode, got changed=%v err=%v", changed, err)
	}
	if c.Mode() != model.ModeDecay {
		t.Fatalf("expected mode to stay decay")
	}
}

func TestSetModeSameIsIdempotent(t *testing.T) {
	c := newChart(t)
	before := c.Snapshot()
	changed, err := c.SetMode(model.ModeDecay, time.Unix(0, 0))
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}
	if c.Animating() {
		t.Fatalf("expected no animation for same mode")
	}
	if !reflect.DeepEqual(before, c.Snapshot()) {
		t.Fatalf("expected unchanged snapshot")
	}
}

func TestCollapseAnimatesToP2(t *testing.T) {
	c := newChart(t)
	now := time.Unix(0, 0)
	if changed, err := c.SetMode(model.ModeCollapse, now); err != nil || !changed {
		t.Fatalf("SetMode: changed=%v err=%v", changed, err)
	}
	if !c.Animating() {
		t.Fatalf("expected animation to start")
	}
	start := c.Snapshot()
	for i, r := range dataset.Default() {
		if start.Bars[i].Value != r.AlphaP1.InexactFloat64() {
			t.Fatalf("%s: expected P1 at start, got %v", r.Name, start.Bars[i].Value)
		}
	}
	if start.Timeline[0] != TimelineStart || start.Timeline[1] != TimelineEnd {
		t.Fatalf("unexpected timeline: %v", start.Timeline)
	}

	prev := c.Progress()
	for step := 1; step <= 16; step++ {
		c.Step(now.Add(time.Duration(step) * 100 * time.Millisecond))
		if c.Progress() < prev {
			t.Fatalf("progress went backwards: %v < %v", c.Progress(), prev)
		}
		prev = c.Progress()
	}
	if c.Animating() || c.Progress() != 1 {
		t.Fatalf("expected finished at 1, got %v", c.Progress())
	}
	end := c.Snapshot()
	for i, r := range dataset.Default() {
		if end.Bars[i].Value != r.AlphaP2.InexactFloat64() {
			t.Fatalf("%s: expected P2 at end, got %v", r.Name, end.Bars[i].Value)
		}
	}
	if end.Axis != (chart.Axis{Min: -4, Max: 8}) {
		t.Fatalf("unexpected auto axis at P2: %+v", end.Axis)
	}
}

func TestToggleTwiceRestoresDecay(t *testing.T) {
	c := newChart(t)
	now := time.Unix(0, 0)
	original := barValues(c.Snapshot())
	if _, err := c.SetMode(model.ModeCollapse, now); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	c.Step(now.Add(500 * time.Millisecond))
	if _, err := c.SetMode(model.ModeDecay, now.Add(600*time.Millisecond)); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if !reflect.DeepEqual(barValues(c.Snapshot()), original) {
		t.Fatalf("expected decay values restored, got %v", barValues(c.Snapshot()))
	}
	c.Step(now.Add(5 * time.Second))
	if c.Progress() != 0 {
		t.Fatalf("expected progress back at 0, got %v", c.Progress())
	}
}

func TestRetargetMidFlightStartsFromCurrentProgress(t *testing.T) {
	c := newChart(t)
	now := time.Unix(0, 0)
	c.SetMode(model.ModeCollapse, now)
	c.Step(now.Add(800 * time.Millisecond))
	mid := c.Progress()
	tag := c.Animator().Tag()
	c.SetMode(model.ModeDecay, now.Add(800*time.Millisecond))
	if c.Animator().Tag() == tag {
		t.Fatalf("expected a new animation generation")
	}
	if c.Progress() != mid {
		t.Fatalf("expected retarget to keep progress %v, got %v", mid, c.Progress())
	}
	c.Step(now.Add(900 * time.Millisecond))
	if c.Progress() >= mid {
		t.Fatalf("expected progress to head back toward 0")
	}
}

func TestDeepSeekDecayScenario(t *testing.T) {
	c := newChart(t)
	snap := c.Snapshot()
	bar := snap.Bars[2]
	if bar.Label != "DeepSeek 3.2" || bar.Value != -21.77 || bar.Tone != chart.ToneStandard {
		t.Fatalf("unexpected DeepSeek bar: %+v", bar)
	}
	detail, ok := c.Detail(2)
	if !ok {
		t.Fatalf("expected detail for DeepSeek")
	}
	lines := chart.DetailLines(detail)
	if lines[1] != "Alpha Decay: -21.77 pp" {
		t.Fatalf("unexpected detail text: %q", lines[1])
	}
}

func TestPitinfLargeDecayScenario(t *testing.T) {
	c := newChart(t)
	detail, ok := c.Detail(5)
	if !ok || detail.Label != "Pitinf-Large" || !detail.IsPiT {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if got := chart.FormatDecay(detail.Decay); got != "+1.30 pp" {
		t.Fatalf("expected +1.30 pp, got %q", got)
	}
	if c.Snapshot().Bars[5].Tone != chart.TonePiT {
		t.Fatalf("expected PiT tone")
	}
}

func TestDetailWithoutFocusIsEmpty(t *testing.T) {
	c := newChart(t)
	for _, idx := range []int{-1, 6, 100} {
		if _, ok := c.Detail(idx); ok {
			t.Fatalf("expected no detail for index %d", idx)
		}
	}
}

func TestDetailFollowsMode(t *testing.T) {
	c, err := New(dataset.Default(), Options{})
	if err != nil {
		t.Fatalf("new chart: %v", err)
	}
	c.SetMode(model.ModeCollapse, time.Unix(0, 0))
	if c.Progress() != 1 {
		t.Fatalf("expected instant switch without duration, got %v", c.Progress())
	}
	detail, _ := c.Detail(0)
	if detail.Mode != model.ModeCollapse {
		t.Fatalf("expected collapse detail, got %s", detail.Mode)
	}
}

func TestLayoutMediumMidpoint(t *testing.T) {
	snap := Layout(dataset.Default(), model.ModeCollapse, 0.5)
	if got := snap.Bars[4].Value; got != 2.865 {
		t.Fatalf("expected 2.865, got %v", got)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	c := newChart(t)
	records := c.Records()
	records[0].Name = "changed"
	if c.Snapshot().Bars[0].Label != "Llama 3.1 8B" {
		t.Fatalf("expected chart records to be isolated")
	}
}

func TestDecayAxisGrowsToFitData(t *testing.T) {
	records := []model.BenchmarkRecord{
		{
			Name:    "Wide-Loss",
			AlphaP1: decimal.RequireFromString("30.50"),
			AlphaP2: decimal.RequireFromString("-10.00"),
			Decay:   decimal.RequireFromString("-40.50"),
		},
		{
			Name:    "Wide-Gain",
			AlphaP1: decimal.RequireFromString("1.00"),
			AlphaP2: decimal.RequireFromString("8.20"),
			Decay:   decimal.RequireFromString("7.20"),
			IsPiT:   true,
		},
	}
	snap := Layout(records, model.ModeDecay, 0)
	if snap.Axis != chart.FixedAxis(-45, 10) {
		t.Fatalf("expected axis widened to [-45, 10], got %+v", snap.Axis)
	}
	for _, b := range snap.Bars {
		if !snap.Axis.Contains(b.Value) {
			t.Fatalf("bar %s=%v outside axis %+v", b.Label, b.Value, snap.Axis)
		}
	}
}
