// Package tui implements the interactive terminal front-end for the
// comparison engine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"simlab"
	"simlab/similarity"
	"simlab/types"
	"simlab/visualization"
)

// EnginePort is the TUI-facing subset of the comparison engine.
type EnginePort interface {
	Compare(ctx context.Context, textA, textB string) (*simlab.Comparison, error)
	History() []types.ComparisonRecord
	Projection() ([]simlab.ProjectionPoint, error)
	Visualization(a, b types.EmbeddingVector, metric similarity.MetricKind) (*simlab.VisualizationData, error)
	Reset()
	Config() types.SessionConfig
}

// pane selects what the viewport shows.
type pane int

const (
	paneResult pane = iota
	paneHistory
	paneProjection
)

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	engine    EnginePort
	inputA    textinput.Model
	inputB    textinput.Model
	viewport  viewport.Model
	last      *simlab.Comparison
	visual    *simlab.VisualizationData
	pane      pane
	threshold float64
	focusB    bool
	ready     bool
	status    string
}

// New creates a new TUI model instance.
func New(engine EnginePort, threshold float64) Model {
	a := textinput.New()
	a.Prompt = "A> "
	a.Placeholder = "First text"
	a.Focus()
	a.CharLimit = 0
	b := textinput.New()
	b.Prompt = "B> "
	b.Placeholder = "Second text"
	b.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:    engine,
		inputA:    a,
		inputB:    b,
		viewport:  vp,
		threshold: threshold,
		status:    "Enter two texts, tab to switch, enter to compare. h history, p map, r reset.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + 2*qh + 2 // header, status, two input frames, spacers
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderPane())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.focusB = !m.focusB
			if m.focusB {
				m.inputA.Blur()
				m.inputB.Focus()
			} else {
				m.inputB.Blur()
				m.inputA.Focus()
			}
			return m, textinput.Blink
		case "enter":
			return m.runCompare(), nil
		case "ctrl+h":
			m.pane = paneHistory
			m.viewport.SetContent(m.renderPane())
			return m, nil
		case "ctrl+p":
			m.pane = paneProjection
			m.viewport.SetContent(m.renderPane())
			return m, nil
		case "ctrl+r":
			m.engine.Reset()
			m.last = nil
			m.visual = nil
			m.pane = paneResult
			m.status = "History cleared."
			m.viewport.SetContent(m.renderPane())
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	if m.focusB {
		m.inputB, cmd = m.inputB.Update(msg)
	} else {
		m.inputA, cmd = m.inputA.Update(msg)
	}
	return m, cmd
}

func (m Model) runCompare() Model {
	textA := strings.TrimSpace(m.inputA.Value())
	textB := strings.TrimSpace(m.inputB.Value())
	if textA == "" || textB == "" {
		m.status = "Both texts are required."
		return m
	}

	cmp, err := m.engine.Compare(context.Background(), textA, textB)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.last = cmp
	m.visual = nil
	if vis, err := m.engine.Visualization(cmp.Record.VectorA, cmp.Record.VectorB, m.engine.Config().Metric); err == nil {
		m.visual = vis
	}
	m.pane = paneResult
	m.status = fmt.Sprintf("Compared #%d.", cmp.Record.Seq)
	m.viewport.SetContent(m.renderPane())
	return m
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	cfg := m.engine.Config()
	header := lipgloss.NewStyle().Bold(true).Render("Embedding Similarity Playground")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render(fmt.Sprintf("model=%s metric=%s keywords=%v", cfg.Model, cfg.Metric, cfg.UseKeywords))
	body := resultBoxStyle.Render(m.viewport.View())
	inputs := inputBoxStyle.Render(m.inputA.View()) + "\n" + inputBoxStyle.Render(m.inputB.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + sub + "\n" + body + "\n" + inputs + "\n" + status
}

func (m Model) renderPane() string {
	switch m.pane {
	case paneHistory:
		return m.renderHistory()
	case paneProjection:
		return m.renderProjection()
	default:
		return m.renderResult()
	}
}

func (m Model) renderResult() string {
	if m.last == nil {
		return "No comparison yet."
	}
	rec := m.last.Record
	cfg := m.engine.Config()

	var b strings.Builder
	fmt.Fprintf(&b, "#%d  %q vs %q\n\n", rec.Seq, rec.TextA, rec.TextB)
	for _, kind := range similarity.Metrics {
		res := m.last.Scores[kind]
		marker := "  "
		if kind == cfg.Metric {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%-10s %.4f", marker, kind, res.Score)
		if res.Degenerate {
			b.WriteString("  (degenerate)")
		}
		b.WriteByte('\n')
	}

	primary := m.last.Scores[cfg.Metric]
	label := simlab.Classify(primary.Score, m.threshold)
	fmt.Fprintf(&b, "\n%s (threshold %.2f)\n", labelStyle(label).Render(string(label)), m.threshold)

	if rec.HasKeywordScores() {
		fmt.Fprintf(&b, "\nkeywords A: %s\nkeywords B: %s\n", strings.Join(rec.KeywordsA, ", "), strings.Join(rec.KeywordsB, ", "))
		for _, kind := range similarity.Metrics {
			fmt.Fprintf(&b, "  kw %-10s %.4f\n", kind, m.last.KeywordScores[kind].Score)
		}
	} else if len(rec.KeywordsA) > 0 || len(rec.KeywordsB) > 0 {
		b.WriteString("\nkeyword scores unavailable (no keywords on one side)\n")
	}

	if m.visual != nil {
		fmt.Fprintf(&b, "\nangle: %.1f deg", m.visual.Polar.Degrees)
		if m.visual.Polar.Degenerate {
			b.WriteString("  (degenerate)")
		}
		b.WriteByte('\n')
		if len(m.visual.Contributions) > 0 {
			b.WriteString("\ntop dimension contributions:\n")
			b.WriteString(renderContributions(m.visual.Contributions, 10))
		}
	}
	return b.String()
}

func (m Model) renderHistory() string {
	records := m.engine.History()
	if len(records) == 0 {
		return "History is empty."
	}
	cfg := m.engine.Config()

	var b strings.Builder
	fmt.Fprintf(&b, "History (%d, newest first)\n\n", len(records))
	for _, rec := range records {
		score := rec.Scores[cfg.Metric].Score
		fmt.Fprintf(&b, "#%-3d %s  %.4f  %s | %s\n",
			rec.Seq, rec.Time.Format("15:04:05"), score,
			truncate(rec.TextA, 28), truncate(rec.TextB, 28))
	}
	return b.String()
}

func (m Model) renderProjection() string {
	points, err := m.engine.Projection()
	if err != nil {
		return "Projection unavailable: " + err.Error()
	}
	return renderScatter(points, m.viewport.Width, m.viewport.Height-2)
}

// renderContributions draws one signed bar per dimension.
func renderContributions(contribs []visualization.Contribution, limit int) string {
	if limit > len(contribs) {
		limit = len(contribs)
	}
	maxAbs := 0.0
	for _, c := range contribs[:limit] {
		if a := abs(c.Value); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	var b strings.Builder
	for _, c := range contribs[:limit] {
		width := int(abs(c.Value) / maxAbs * 20)
		bar := strings.Repeat("█", width)
		sign := "+"
		style := positiveBarStyle
		if c.Value < 0 {
			sign = "-"
			style = negativeBarStyle
		}
		fmt.Fprintf(&b, "  d%-5d %s %s %.5f\n", c.Dimension, sign, style.Render(bar), c.Value)
	}
	return b.String()
}

// renderScatter plots projection points on a character grid.
func renderScatter(points []simlab.ProjectionPoint, width, height int) string {
	if width < 20 {
		width = 20
	}
	if height < 8 {
		height = 8
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = minFloat(minX, p.X), maxFloat(maxX, p.X)
		minY, maxY = minFloat(minY, p.Y), maxFloat(maxY, p.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	glyphs := map[simlab.PointKind]rune{
		simlab.PointTextA:    'A',
		simlab.PointTextB:    'B',
		simlab.PointKeywordA: 'a',
		simlab.PointKeywordB: 'b',
	}
	// Draw oldest first so the latest pair wins overlapping cells.
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		col := int((p.X - minX) / spanX * float64(width-1))
		row := int((maxY - p.Y) / spanY * float64(height-1))
		grid[row][col] = glyphs[p.Kind]
	}

	var b strings.Builder
	b.WriteString("2D map of history vectors (A/B texts, a/b keywords)\n")
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

var (
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	matchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	borderlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noMatchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	positiveBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negativeBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func labelStyle(label simlab.MatchLabel) lipgloss.Style {
	switch label {
	case simlab.LabelMatch:
		return matchStyle
	case simlab.LabelBorderline:
		return borderlineStyle
	default:
		return noMatchStyle
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
