package anim

import "time"

// Transition moves a value from From to To over Duration starting at Start.
type Transition struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Curve
}

// At samples the transition at now. Before Start it returns From and after
// the end it returns To exactly.
func (t Transition) At(now time.Time) float64 {
	if t.Duration <= 0 || !now.Before(t.End()) {
		return t.To
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return t.From
	}
	return t.valueAt(float64(elapsed) / float64(t.Duration))
}

// End is the instant the transition completes.
func (t Transition) End() time.Time {
	return t.Start.Add(t.Duration)
}

// Done reports whether the transition has finished at now.
func (t Transition) Done(now time.Time) bool {
	return t.Duration <= 0 || !now.Before(t.End())
}

// Samples returns n evenly spaced values from start to end inclusive.
func (t Transition) Samples(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{t.To}
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = t.valueAt(float64(i) / float64(n-1))
	}
	out[n-1] = t.To
	return out
}

func (t Transition) valueAt(linear float64) float64 {
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	p := ease(clamp01(linear))
	if p >= 1 {
		return t.To
	}
	return t.From + (t.To-t.From)*p
}
