// Package dataset holds the Look-Ahead-Bench results and their validation.
package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/lookahead/internal/model"
)

// ErrInvariant marks a record whose stored decay disagrees with its alphas.
var ErrInvariant = errors.New("decay invariant violated")

const maxPlaces = 2

// Alpha values are in percentage points, exact figures from the paper.
var defaultRecords = []model.BenchmarkRecord{
	record("Llama 3.1 8B", "13.81", "-3.42", "-17.23", false),
	record("Llama 3.1 70B", "19.27", "4.02", "-15.25", false),
	record("DeepSeek 3.2", "20.73", "-1.04", "-21.77", false),
	record("Pitinf-Small", "-0.25", "0.06", "0.31", true),
	record("Pitinf-Medium", "2.44", "3.29", "0.85", true),
	record("Pitinf-Large", "6.02", "7.32", "1.30", true),
}

func record(name, p1, p2, decay string, pit bool) model.BenchmarkRecord {
	return model.BenchmarkRecord{
		Name:    name,
		AlphaP1: decimal.RequireFromString(p1),
		AlphaP2: decimal.RequireFromString(p2),
		Decay:   decimal.RequireFromString(decay),
		IsPiT:   pit,
	}
}

// Default returns a copy of the built-in benchmark results.
func Default() []model.BenchmarkRecord {
	return Clone(defaultRecords)
}

// Clone copies a record slice so callers cannot mutate shared data.
func Clone(records []model.BenchmarkRecord) []model.BenchmarkRecord {
	out := make([]model.BenchmarkRecord, len(records))
	copy(out, records)
	return out
}

// Validate checks names, precision and the decay invariant.
func Validate(records []model.BenchmarkRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("dataset: no records")
	}
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.Name == "" {
			return fmt.Errorf("dataset: record %d has an empty name", i)
		}
		if _, ok := seen[r.Name]; ok {
			return fmt.Errorf("dataset: duplicate record name %q", r.Name)
		}
		seen[r.Name] = struct{}{}
		for _, field := range []struct {
			name  string
			value decimal.Decimal
		}{
			{"alpha_p1", r.AlphaP1},
			{"alpha_p2", r.AlphaP2},
			{"decay", r.Decay},
		} {
			if !field.value.Equal(field.value.Round(maxPlaces)) {
				return fmt.Errorf("dataset: record %q: %s %s has more than %d decimal places", r.Name, field.name, field.value.String(), maxPlaces)
			}
		}
		derived := r.AlphaP2.Sub(r.AlphaP1)
		if !r.Decay.Equal(derived) {
			return fmt.Errorf("dataset: record %q: %w: decay %s != alpha_p2 - alpha_p1 (%s)",
				r.Name, ErrInvariant, r.Decay.StringFixed(maxPlaces), derived.StringFixed(maxPlaces))
		}
	}
	return nil
}

// Interpolate returns alphaP1 + progress*(alphaP2-alphaP1).
// Progress is expected in [0, 1]; NaN and infinities yield alphaP1.
func Interpolate(r model.BenchmarkRecord, progress float64) decimal.Decimal {
	if math.IsNaN(progress) || math.IsInf(progress, 0) {
		return r.AlphaP1
	}
	p := decimal.NewFromFloat(progress)
	return r.AlphaP1.Add(p.Mul(r.AlphaP2.Sub(r.AlphaP1)))
}
