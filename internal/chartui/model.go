// Package chartui provides the Bubble Tea benchmark chart interface.
package chartui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/lookahead/internal/benchchart"
	"github.com/verte-zerg/lookahead/internal/chart"
	"github.com/verte-zerg/lookahead/internal/model"
)

const (
	kicker        = "Look-Ahead-Bench"
	title         = "When Models Leave Memorized History"
	subtitle      = "Models that look brilliant in backtests can collapse when markets move beyond their training data. This chart shows why."
	narration     = "Watch what happens when models move from memorized history to unseen markets."
	insightTitle  = "The Scaling Paradox"
	insightBody   = "Scaling standard models amplifies memorization and magnifies failure when regimes change.\n\nPoint-in-Time models remove future knowledge, allowing scale to improve real reasoning instead."
	maxTextWidth  = 72
	noSelection   = -1
	fallbackWidth = 80
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	kickerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	insightStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

type keyMap struct {
	Decay    key.Binding
	Collapse key.Binding
	Toggle   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Decay: key.NewBinding(
			key.WithKeys("1", "d"),
			key.WithHelp("1/d", "decay"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("2", "c"),
			key.WithHelp("2/c", "collapse"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev bar"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next bar"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear focus"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decay, k.Collapse, k.Toggle, k.Prev, k.Next, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Decay, k.Collapse, k.Toggle},
		{k.Prev, k.Next, k.Clear},
		{k.Quit},
	}
}

// Model implements the Bubble Tea chart UI.
type Model struct {
	chart *benchchart.Chart
	cfg   model.Config
	log   logrus.FieldLogger
	now   func() time.Time

	keys keyMap
	help help.Model

	selected int
	errMsg   string

	width  int
	height int
}

// NewModel constructs a chart UI around c. A nil logger discards output.
func NewModel(c *benchchart.Chart, cfg model.Config, log logrus.FieldLogger) *Model {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Model{
		chart:    c,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		keys:     defaultKeyMap(),
		help:     help.New(),
		selected: noSelection,
	}
}

// Init implements tea.Model. A configured collapse mode starts animating
// right away.
func (m *Model) Init() tea.Cmd {
	if m.cfg.Mode == "" || m.cfg.Mode == m.chart.Mode() {
		return nil
	}
	return m.setMode(m.cfg.Mode)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.chart.Animator().Update(msg); handled {
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Decay):
			return m, m.setMode(model.ModeDecay)
		case key.Matches(msg, m.keys.Collapse):
			return m, m.setMode(model.ModeCollapse)
		case key.Matches(msg, m.keys.Toggle):
			return m, m.setMode(m.chart.Mode().Next())
		case key.Matches(msg, m.keys.Prev):
			m.moveSelection(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.moveSelection(1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.selected = noSelection
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)
	bodyHeight := maxInt(1, m.height-footerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	return body + "\n" + fitLines(footer, m.width, footerHeight)
}

// Selected returns the focused bar index, or -1 when no bar is focused.
func (m *Model) Selected() int {
	return m.selected
}

func (m *Model) setMode(mode model.ViewMode) tea.Cmd {
	from := m.chart.Progress()
	changed, err := m.chart.SetMode(mode, m.now())
	if err != nil {
		m.errMsg = err.Error()
		m.log.WithError(err).Warn("failed to switch view mode")
		return nil
	}
	m.errMsg = ""
	if !changed {
		return nil
	}
	m.log.WithFields(logrus.Fields{
		"mode": mode,
		"from": fmt.Sprintf("%.3f", from),
		"to":   mode.Target(),
	}).Debug("view mode changed")
	return m.chart.Animator().Frame()
}

func (m *Model) moveSelection(delta int) {
	count := len(m.chart.Records())
	if count == 0 {
		m.selected = noSelection
		return
	}
	if m.selected == noSelection {
		if delta < 0 {
			m.selected = count - 1
		} else {
			m.selected = 0
		}
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.selected = next
}

func (m *Model) renderBody() string {
	textWidth := minInt(m.width, maxTextWidth)
	sections := []string{
		kickerStyle.Render(kicker),
		titleStyle.Render(truncateLine(title, m.width)),
		mutedStyle.Width(textWidth).Render(subtitle),
		"",
		m.renderTabs(),
		mutedStyle.Width(textWidth).Render(narration),
		"",
	}
	snap := m.chart.Snapshot()
	if snap.Mode == model.ModeCollapse {
		sections = append(sections, mutedStyle.Render(timelineLine(snap.Timeline, m.width)))
	}
	sections = append(sections, m.renderChart(snap))
	sections = append(sections, chart.Legend(!m.cfg.NoColor))
	if card := m.renderDetail(); card != "" {
		sections = append(sections, card)
	}
	sections = append(sections, m.renderInsight(textWidth))
	return strings.Join(sections, "\n")
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(model.Modes))
	for _, mode := range model.Modes {
		if mode == m.chart.Mode() {
			parts = append(parts, activeNavStyle.Render(mode.Label()))
		} else {
			parts = append(parts, inactiveNavStyle.Render(mode.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderChart(snap benchchart.Snapshot) string {
	var buf bytes.Buffer
	opts := chart.Options{
		Width:    m.width,
		Height:   m.cfg.Height,
		Focus:    m.selected != noSelection,
		Selected: m.selected,
		Color:    !m.cfg.NoColor,
	}
	if err := chart.Render(&buf, snap.Bars, snap.Axis, opts); err != nil {
		return errorStyle.Render(fmt.Sprintf("Failed to render chart: %v", err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderDetail() string {
	detail, ok := m.chart.Detail(m.selected)
	if !ok {
		return ""
	}
	lines := chart.DetailLines(detail)
	out := make([]string, 0, len(lines)+1)
	out = append(out, cardTitleStyle.Render(lines[0]+"  ("+detail.Mode.Label()+")"))
	for _, line := range lines[1:] {
		out = append(out, cardValueStyle.Render(line))
	}
	return cardStyle.Render(strings.Join(out, "\n"))
}

func (m *Model) renderInsight(width int) string {
	inner := maxInt(10, width-4)
	content := kickerStyle.Render(insightTitle) + "\n" + mutedStyle.Width(inner).Render(insightBody)
	return insightStyle.Render(content)
}

func (m *Model) renderFooter() string {
	view := m.help.View(m.keys)
	if m.errMsg != "" {
		return view + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return view
}

func timelineLine(timeline [2]string, width int) string {
	if width <= 0 {
		width = fallbackWidth
	}
	left, right := timeline[0], timeline[1]
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return truncateLine(left+" → "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
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
