package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Tone picks the fill colour of a bar.
type Tone int

const (
	// ToneStandard marks a standard model.
	ToneStandard Tone = iota
	// TonePiT marks a point-in-time model.
	TonePiT
)

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
	Tone  Tone
}

// Options controls the rendered size and decoration.
type Options struct {
	// Width is the total width including the axis; <= 0 uses the terminal.
	Width int
	// Height is the number of plot rows; <= 0 uses the default.
	Height int
	// Focus marks the bar at Selected.
	Focus    bool
	Selected int
	Color    bool
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultChartHeight  = 12
	minChartHeight      = 3
	minSlotWidth        = 3
	subRows             = 8
	axisSeparator       = " │"
	zeroLineRune        = '─'
	selectedMarker      = "▲"
	colorReset          = "\x1b[0m"
	boldOn              = "\x1b[1m"
	terminalWidthBackup = 80
)

var lowerBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var tonePalette = map[Tone]ansiColor{
	ToneStandard: {name: "red", code: "\x1b[31m"},
	TonePiT:      {name: "green", code: "\x1b[32m"},
}

// Render draws bars against axis as a vertical bar chart.
func Render(w io.Writer, bars []Bar, axis Axis, opts Options) error {
	if len(bars) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultChartHeight
	}
	if height < minChartHeight {
		height = minChartHeight
	}
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	useColor := opts.Color && os.Getenv("NO_COLOR") == ""

	total := height * subRows
	zeroUnit := valueToUnit(0, axis, total)
	zeroRow := -1
	if axis.Contains(0) {
		zeroRow = minInt(zeroUnit/subRows, height-1)
	}

	labels := axisLabels(axis, height, zeroRow)
	axisWidth := 0
	for _, l := range labels {
		axisWidth = maxInt(axisWidth, runewidth.StringWidth(l))
	}
	slot := slotWidth(width-axisWidth-runewidth.StringWidth(axisSeparator), len(bars))
	barWidth := maxInt(1, slot*2/3)
	padLeft := (slot - barWidth) / 2
	padRight := slot - barWidth - padLeft

	spans := make([][2]int, len(bars))
	for i, b := range bars {
		spans[i] = barSpan(b.Value, axis, total, zeroUnit)
	}

	for row := height - 1; row >= 0; row-- {
		var line strings.Builder
		line.WriteString(padLeftTo(labels[row], axisWidth))
		line.WriteString(axisSeparator)
		gap := ' '
		if row == zeroRow {
			gap = zeroLineRune
		}
		for i, b := range bars {
			line.WriteString(strings.Repeat(string(gap), padLeft))
			ch := cellRune(spans[i], row, b.Value >= 0)
			if ch == ' ' {
				line.WriteString(strings.Repeat(string(gap), barWidth))
			} else {
				cell := strings.Repeat(string(ch), barWidth)
				if useColor {
					cell = tonePalette[b.Tone].code + cell + colorReset
				}
				line.WriteString(cell)
			}
			line.WriteString(strings.Repeat(string(gap), padRight))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}

	indent := strings.Repeat(" ", axisWidth+runewidth.StringWidth(axisSeparator))
	var labelLine strings.Builder
	labelLine.WriteString(indent)
	for i, b := range bars {
		label := centerIn(runewidth.Truncate(b.Label, maxInt(1, slot-1), "…"), slot)
		if useColor && opts.Focus && i == opts.Selected {
			label = boldOn + label + colorReset
		}
		labelLine.WriteString(label)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(labelLine.String(), " ")); err != nil {
		return err
	}
	if opts.Focus && opts.Selected >= 0 && opts.Selected < len(bars) {
		marker := indent + strings.Repeat(" ", opts.Selected*slot) + centerIn(selectedMarker, slot)
		if _, err := fmt.Fprintln(w, strings.TrimRight(marker, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Legend describes the bar colours.
func Legend(useColor bool) string {
	parts := make([]string, 0, len(tonePalette))
	for _, tone := range []Tone{ToneStandard, TonePiT} {
		c := tonePalette[tone]
		label := fmt.Sprintf("%c %s (%s)", lowerBlocks[subRows], toneName(tone), c.name)
		if useColor && os.Getenv("NO_COLOR") == "" {
			label = c.code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func toneName(t Tone) string {
	if t == TonePiT {
		return "point-in-time"
	}
	return "standard"
}

// TerminalWidth returns the stdout width, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a colour-capable terminal.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabels(axis Axis, height, zeroRow int) []string {
	labels := make([]string, height)
	labels[height-1] = FormatTick(axis.Max)
	labels[0] = FormatTick(axis.Min)
	if zeroRow >= 0 {
		labels[zeroRow] = FormatTick(0)
	}
	return labels
}

func slotWidth(plotWidth, count int) int {
	if count <= 0 {
		return minSlotWidth
	}
	return maxInt(minSlotWidth, plotWidth/count)
}

func valueToUnit(v float64, axis Axis, total int) int {
	pos := (v - axis.Min) / axis.Span()
	unit := int(math.Round(pos * float64(total)))
	if unit < 0 {
		return 0
	}
	if unit > total {
		return total
	}
	return unit
}

// barSpan returns the filled unit range [lo, hi) between zero and v. Any
// non-zero value gets at least one unit so it stays visible.
func barSpan(v float64, axis Axis, total, zeroUnit int) [2]int {
	unit := valueToUnit(v, axis, total)
	if unit == zeroUnit {
		switch {
		case v > 0 && unit < total:
			unit++
		case v < 0 && unit > 0:
			unit--
		}
	}
	if unit < zeroUnit {
		return [2]int{unit, zeroUnit}
	}
	return [2]int{zeroUnit, unit}
}

func cellRune(span [2]int, row int, positive bool) rune {
	cellLo := row * subRows
	cellHi := cellLo + subRows
	lo := maxInt(span[0], cellLo)
	hi := minInt(span[1], cellHi)
	filled := hi - lo
	switch {
	case filled <= 0:
		return ' '
	case filled >= subRows:
		return lowerBlocks[subRows]
	case span[0] <= cellLo:
		return lowerBlocks[filled]
	case span[1] >= cellHi:
		return upperBlock(filled)
	case positive:
		return lowerBlocks[filled]
	default:
		return upperBlock(filled)
	}
}

func upperBlock(filled int) rune {
	if filled >= subRows/2 {
		return '▀'
	}
	return '▔'
}

func centerIn(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func padLeftTo(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
