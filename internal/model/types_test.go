package model

import (
	"errors"
	"testing"
)

func TestParseViewMode(t *testing.T) {
	for _, input := range []string{"decay", " Collapse "} {
		if _, err := ParseViewMode(input); err != nil {
			t.Fatalf("expected %q to parse: %v", input, err)
		}
	}
	if _, err := ParseViewMode("comparison"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestViewModeTargets(t *testing.T) {
	if ModeDecay.Target() != 0 || ModeCollapse.Target() != 1 {
		t.Fatalf("unexpected targets: %v %v", ModeDecay.Target(), ModeCollapse.Target())
	}
	if ModeDecay.Next() != ModeCollapse || ModeCollapse.Next() != ModeDecay {
		t.Fatalf("expected Next to toggle between modes")
	}
}
