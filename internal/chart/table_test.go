package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/lookahead/internal/dataset"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Model", "Decay"}
	rows := [][]string{
		{"DeepSeek 3.2", "-21.77"},
		{"Pitinf-Small", "+0.31"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Model          Decay" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "DeepSeek 3.2  -21.77" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Pitinf-Small   +0.31" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, dataset.Default()); err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header and 6 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[3], "DeepSeek 3.2") || !strings.Contains(lines[3], "-21.77") || !strings.HasSuffix(lines[3], "standard") {
		t.Fatalf("unexpected DeepSeek row: %q", lines[3])
	}
	if !strings.Contains(lines[6], "+1.30") || !strings.HasSuffix(lines[6], "point-in-time") {
		t.Fatalf("unexpected Pitinf-Large row: %q", lines[6])
	}
}
