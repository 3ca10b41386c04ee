package chart

import "math"

const autoAxisIntervals = 6

var niceSteps = []float64{1, 2, 2.5, 5, 10}

// Axis is the closed value range of the vertical axis.
type Axis struct {
	Min float64
	Max float64
}

// FixedAxis returns an axis with the given bounds.
func FixedAxis(minVal, maxVal float64) Axis {
	if maxVal < minVal {
		minVal, maxVal = maxVal, minVal
	}
	return Axis{Min: minVal, Max: maxVal}
}

// AutoAxis fits the values, always includes zero, and rounds the bounds
// out to a nice step.
func AutoAxis(values []float64) Axis {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}
	step := niceStep((hi - lo) / autoAxisIntervals)
	return Axis{
		Min: roundTick(math.Floor(lo/step) * step),
		Max: roundTick(math.Ceil(hi/step) * step),
	}
}

// Contains reports whether v lies within the axis.
func (a Axis) Contains(v float64) bool {
	return v >= a.Min && v <= a.Max
}

// Span is Max - Min, never zero.
func (a Axis) Span() float64 {
	if s := a.Max - a.Min; s > 0 {
		return s
	}
	return 1
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	for _, n := range niceSteps {
		if frac <= n+1e-9 {
			return n * base
		}
	}
	return 10 * base
}

func roundTick(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}
