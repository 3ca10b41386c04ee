// Package chart renders benchmark bar charts for the terminal.
package chart

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/lookahead/internal/model"
)

const unitSuffix = " pp"

// FormatDecay formats a decay value with two decimals and a leading "+"
// when it is not negative.
func FormatDecay(d decimal.Decimal) string {
	return signedFixed(d) + unitSuffix
}

// FormatAlpha formats an alpha value with two decimals.
func FormatAlpha(d decimal.Decimal) string {
	return d.StringFixed(2) + unitSuffix
}

// FormatTick formats an axis tick the way the axis labels read, e.g. "-25 pp".
func FormatTick(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unitSuffix
}

func signedFixed(d decimal.Decimal) string {
	r := d.Round(2)
	s := r.StringFixed(2)
	if !r.IsNegative() {
		return "+" + s
	}
	return s
}

// DetailLines renders the detail surface text for a focused bar.
func DetailLines(d model.Detail) []string {
	if d.Mode == model.ModeDecay {
		return []string{
			d.Label,
			"Alpha Decay: " + FormatDecay(d.Decay),
		}
	}
	return []string{
		d.Label,
		"In-Sample (P1): " + FormatAlpha(d.AlphaP1),
		"Out-of-Sample (P2): " + FormatAlpha(d.AlphaP2),
	}
}
