// Package anim provides time-driven transitions for chart animation.
package anim

import "math"

// Curve maps linear time in [0, 1] to eased progress in [0, 1].
type Curve func(t float64) float64

// Linear leaves time unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseInOut matches the CSS ease-in-out timing function.
var EaseInOut = CubicBezier(0.42, 0, 0.58, 1)

const (
	bezierEpsilon    = 1e-7
	newtonIterations = 8
)

// CubicBezier returns a CSS-style timing curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0, 1] so the curve stays a
// function of time.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	x1 = clamp01(x1)
	x2 = clamp01(x2)
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < newtonIterations; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < bezierEpsilon {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}
		lo, hi := 0.0, 1.0
		s = x
		for lo < hi {
			v := sampleX(s)
			if math.Abs(v-x) < bezierEpsilon {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			next := (lo + hi) / 2
			if next == s {
				return s
			}
			s = next
		}
		return s
	}

	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return sampleY(solve(t))
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
