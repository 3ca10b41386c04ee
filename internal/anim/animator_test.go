package anim

import (
	"testing"
	"time"
)

func TestAnimatorRunsToTarget(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAnimator(0, DefaultDuration, EaseInOut, 0)
	if !a.Retarget(1, now) {
		t.Fatalf("expected retarget to start a transition")
	}
	if !a.Step(now.Add(800 * time.Millisecond)) {
		t.Fatalf("expected transition to still run halfway")
	}
	if a.Value() <= 0 || a.Value() >= 1 {
		t.Fatalf("expected intermediate value, got %v", a.Value())
	}
	if a.Step(now.Add(DefaultDuration)) {
		t.Fatalf("expected transition to finish")
	}
	if a.Value() != 1 || a.Active() {
		t.Fatalf("expected to rest at 1, got %v active=%v", a.Value(), a.Active())
	}
}

func TestAnimatorRetargetIdle(t *testing.T) {
	a := NewAnimator(0, DefaultDuration, nil, 0)
	if a.Retarget(0, time.Unix(0, 0)) {
		t.Fatalf("expected no-op retarget to current value")
	}
	if a.Frame() != nil {
		t.Fatalf("expected no frame when idle")
	}
}

func TestAnimatorRetargetMidFlight(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAnimator(0, DefaultDuration, EaseInOut, 0)
	a.Retarget(1, now)
	firstTag := a.Tag()
	mid := now.Add(800 * time.Millisecond)
	a.Retarget(0, mid)
	if a.Tag() == firstTag {
		t.Fatalf("expected a new generation after retarget")
	}
	start := a.Value()
	if start < 0.49 || start > 0.51 {
		t.Fatalf("expected retarget to start from the current value, got %v", start)
	}
	prev := start
	for i := 1; i <= 16; i++ {
		a.Step(mid.Add(time.Duration(i) * 100 * time.Millisecond))
		if a.Value() > prev {
			t.Fatalf("expected monotonic descent, %v > %v", a.Value(), prev)
		}
		prev = a.Value()
	}
	if a.Value() != 0 || a.Active() {
		t.Fatalf("expected to rest at 0, got %v", a.Value())
	}
}

func TestAnimatorDropsStaleFrames(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAnimator(0, DefaultDuration, EaseInOut, 0)
	a.Retarget(1, now)
	stale := FrameMsg{ID: a.ID(), Tag: a.Tag(), Time: now.Add(time.Second)}
	a.Retarget(0, now.Add(10*time.Millisecond))

	handled, cmd := a.Update(stale)
	if handled || cmd != nil {
		t.Fatalf("expected stale frame to be ignored")
	}
	other := NewAnimator(0, DefaultDuration, EaseInOut, 0)
	if handled, _ := a.Update(FrameMsg{ID: other.ID(), Tag: a.Tag()}); handled {
		t.Fatalf("expected frame for another animator to be ignored")
	}

	current := FrameMsg{ID: a.ID(), Tag: a.Tag(), Time: now.Add(500 * time.Millisecond)}
	handled, cmd = a.Update(current)
	if !handled || cmd == nil {
		t.Fatalf("expected current frame to advance and schedule the next one")
	}
}

func TestAnimatorZeroDurationJumps(t *testing.T) {
	a := NewAnimator(0, 0, EaseInOut, 0)
	if !a.Retarget(1, time.Unix(0, 0)) {
		t.Fatalf("expected retarget to apply")
	}
	if a.Value() != 1 || a.Active() {
		t.Fatalf("expected immediate jump, got %v", a.Value())
	}
}
