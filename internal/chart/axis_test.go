package chart

import "testing"

func TestAutoAxisIncludesZero(t *testing.T) {
	p1 := []float64{13.81, 19.27, 20.73, -0.25, 2.44, 6.02}
	if got := AutoAxis(p1); got != (Axis{Min: -5, Max: 25}) {
		t.Fatalf("unexpected P1 axis: %+v", got)
	}
	p2 := []float64{-3.42, 4.02, -1.04, 0.06, 3.29, 7.32}
	if got := AutoAxis(p2); got != (Axis{Min: -4, Max: 8}) {
		t.Fatalf("unexpected P2 axis: %+v", got)
	}
	positive := []float64{3, 4}
	if got := AutoAxis(positive); got.Min != 0 {
		t.Fatalf("expected zero lower bound for positive data, got %+v", got)
	}
}

func TestAutoAxisFlat(t *testing.T) {
	got := AutoAxis([]float64{0, 0})
	if got.Min >= 0 || got.Max <= 0 {
		t.Fatalf("expected a non-empty range around zero, got %+v", got)
	}
	if got := AutoAxis(nil); got.Span() <= 0 {
		t.Fatalf("expected positive span for empty data")
	}
}

func TestFixedAxisOrdersBounds(t *testing.T) {
	if got := FixedAxis(5, -25); got != (Axis{Min: -25, Max: 5}) {
		t.Fatalf("unexpected axis: %+v", got)
	}
}

func TestNiceStep(t *testing.T) {
	cases := map[float64]float64{0.33: 0.5, 1.79: 2, 3.5: 5, 2.2: 2.5, 7: 10, 0: 1}
	for in, want := range cases {
		if got := niceStep(in); got < want-1e-9 || got > want+1e-9 {
			t.Fatalf("niceStep(%v) = %v, want %v", in, got, want)
		}
	}
}
