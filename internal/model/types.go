// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownMode is returned for view modes outside the closed set.
var ErrUnknownMode = errors.New("unknown view mode")

// ViewMode selects which chart layout is shown.
type ViewMode string

const (
	// ModeDecay shows alpha decay (P2 - P1) per model.
	ModeDecay ViewMode = "decay"
	// ModeCollapse shows alpha moving from P1 to P2.
	ModeCollapse ViewMode = "collapse"
)

// Modes lists every view mode in toggle order.
var Modes = []ViewMode{ModeDecay, ModeCollapse}

// ParseViewMode converts user input into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	mode := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w %q (use decay or collapse)", ErrUnknownMode, s)
	}
	return mode, nil
}

// Valid reports whether m is one of the known modes.
func (m ViewMode) Valid() bool {
	return m == ModeDecay || m == ModeCollapse
}

// Target is the animation progress associated with the mode.
func (m ViewMode) Target() float64 {
	if m == ModeCollapse {
		return 1
	}
	return 0
}

// Label is the toggle control caption.
func (m ViewMode) Label() string {
	switch m {
	case ModeDecay:
		return "Why Standard LLMs Fail"
	case ModeCollapse:
		return "What Happens After Cutoff"
	default:
		return string(m)
	}
}

// Next returns the other mode.
func (m ViewMode) Next() ViewMode {
	if m == ModeDecay {
		return ModeCollapse
	}
	return ModeDecay
}

// BenchmarkRecord is one evaluated model. Alpha values are percentage points.
type BenchmarkRecord struct {
	Name    string
	AlphaP1 decimal.Decimal
	AlphaP2 decimal.Decimal
	Decay   decimal.Decimal
	IsPiT   bool
}

// Family names the model family for display.
func (r BenchmarkRecord) Family() string {
	if r.IsPiT {
		return "point-in-time"
	}
	return "standard"
}

// Detail is what a detail surface needs to describe one focused bar.
type Detail struct {
	Label   string
	Mode    ViewMode
	Decay   decimal.Decimal
	AlphaP1 decimal.Decimal
	AlphaP2 decimal.Decimal
	IsPiT   bool
}

// Config defines interactive chart settings.
type Config struct {
	Mode        ViewMode
	Duration    time.Duration
	FPS         int
	Height      int
	DatasetPath string
	NoColor     bool
	LogLevel    string
	LogFile     string
}

// ShowConfig defines settings for a one-shot text snapshot.
type ShowConfig struct {
	Mode     ViewMode
	Progress float64
	Width    int
	Height   int
}

// ExportConfig defines image export settings.
type ExportConfig struct {
	Format   string
	Out      string
	Mode     ViewMode
	Progress float64
	Width    int
	Height   int
	Frames   int
}
