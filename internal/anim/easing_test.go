package anim

import (
	"math"
	"testing"
)

func TestEaseInOutEndpoints(t *testing.T) {
	if got := EaseInOut(0); got != 0 {
		t.Fatalf("expected 0 at t=0, got %v", got)
	}
	if got := EaseInOut(1); got != 1 {
		t.Fatalf("expected 1 at t=1, got %v", got)
	}
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("expected symmetric midpoint 0.5, got %v", got)
	}
	if got := EaseInOut(0.1); got >= 0.1 {
		t.Fatalf("expected slow start, got %v at t=0.1", got)
	}
	if got := EaseInOut(0.9); got <= 0.9 {
		t.Fatalf("expected slow finish, got %v at t=0.9", got)
	}
}

func TestEaseInOutMonotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 1000; i++ {
		v := EaseInOut(float64(i) / 1000)
		if v+1e-9 < prev {
			t.Fatalf("curve decreased at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestLinearClamps(t *testing.T) {
	if Linear(-1) != 0 || Linear(2) != 1 || Linear(0.3) != 0.3 {
		t.Fatalf("unexpected linear curve values")
	}
}
