// Package export renders chart snapshots to image files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/lookahead/internal/benchchart"
	chartpkg "github.com/verte-zerg/lookahead/internal/chart"
	"github.com/verte-zerg/lookahead/internal/model"
)

// ErrUnknownFormat is returned for image formats other than png and svg.
var ErrUnknownFormat = errors.New("unknown image format")

const (
	FormatPNG = "png"
	FormatSVG = "svg"

	// DefaultWidth and DefaultHeight are the image size in pixels when unset.
	DefaultWidth  = 1024
	DefaultHeight = 480
	// MinWidth and MinHeight are the smallest accepted image size.
	MinWidth  = 320
	MinHeight = 200
)

var (
	standardColor = drawing.ColorFromHex("dc2626")
	pitColor      = drawing.ColorFromHex("16a34a")
	gridColor     = drawing.ColorFromHex("d4d4d8")
)

// Options controls the exported image.
type Options struct {
	Format string
	Width  int
	Height int
	Title  string
}

// ParseFormat normalizes an image format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w %q (use png or svg)", ErrUnknownFormat, s)
	}
}

// Title is the default caption for a snapshot.
func Title(snap benchchart.Snapshot) string {
	if snap.Mode == model.ModeCollapse {
		return fmt.Sprintf("Look-Ahead-Bench: alpha at %.0f%% from P1 to P2", snap.Progress*100)
	}
	return "Look-Ahead-Bench: alpha decay (P2 - P1)"
}

// Render writes snap as an image to w.
func Render(w io.Writer, snap benchchart.Snapshot, opts Options) error {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if len(snap.Bars) == 0 {
		return fmt.Errorf("nothing to render")
	}
	bc := buildBarChart(snap, opts)
	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}
	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

func buildBarChart(snap benchchart.Snapshot, opts Options) chart.BarChart {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width < MinWidth {
		width = MinWidth
	}
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}
	if height < MinHeight {
		height = MinHeight
	}
	title := opts.Title
	if title == "" {
		title = Title(snap)
	}

	bars := make([]chart.Value, 0, len(snap.Bars))
	for _, b := range snap.Bars {
		fill := standardColor
		if b.Tone == chartpkg.TonePiT {
			fill = pitColor
		}
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}

	slot := (width - 120) / len(bars)
	barWidth := slot * 3 / 5
	if barWidth < 4 {
		barWidth = 4
	}

	return chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       height,
		BarWidth:     barWidth,
		BarSpacing:   slot - barWidth,
		UseBaseValue: true,
		BaseValue:    0,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: snap.Axis.Min, Max: snap.Axis.Max},
			ValueFormatter: tickFormatter,
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
			Ticks:          axisTicks(snap.Axis),
		},
		Bars: bars,
	}
}

func tickFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return chartpkg.FormatTick(f)
	}
	return fmt.Sprintf("%v pp", v)
}

func axisTicks(axis chartpkg.Axis) []chart.Tick {
	const steps = 6
	span := axis.Max - axis.Min
	if span <= 0 {
		return nil
	}
	ticks := make([]chart.Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := axis.Min + span*float64(i)/steps
		ticks = append(ticks, chart.Tick{Value: v, Label: chartpkg.FormatTick(v)})
	}
	return ticks
}
