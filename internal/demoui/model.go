package demoui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dettmer/glidetype/internal/gesture"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

// Model implements the Bubble Tea swipe-typing demo interface: it traces a
// dragged path over an ASCII keyboard grid and shows engine.Recognize
// candidates as the drag proceeds.
type Model struct {
	engine *gesture.Engine
	layout gesture.KeyboardLayout
	grid   gridLayout

	maxCandidates int

	dragging   bool
	startedAt  time.Time
	rawPoints  []gesture.RawPoint
	pathCells  map[[2]int]bool
	tracedKeys map[string]bool

	candidates []gesture.Candidate
	table      table.Model

	width  int
	height int
	errMsg string
}

// NewModel constructs a demo UI model bound to an initialized engine.
func NewModel(engine *gesture.Engine, layout gesture.KeyboardLayout, maxCandidates int) *Model {
	if maxCandidates <= 0 {
		maxCandidates = gesture.DefaultMaxCandidates
	}
	m := &Model{
		engine:        engine,
		layout:        layout,
		grid:          newGridLayout(layout, 2, 1),
		maxCandidates: maxCandidates,
		pathCells:     map[[2]int]bool{},
		tracedKeys:    map[string]bool{},
	}
	m.table = newCandidateTable()
	return m
}

func newCandidateTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Word", Width: 16},
		{Title: "Confidence", Width: 10},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(false), table.WithHeight(8))
	t.SetStyles(table.Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")),
		Cell:   lipgloss.NewStyle(),
	})
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "c":
			m.resetPath()
			return m, nil
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		m.resetPath()
		m.dragging = true
		m.startedAt = time.Now()
		m.appendPoint(msg.X, msg.Y)
	case tea.MouseMotion:
		if m.dragging {
			m.appendPoint(msg.X, msg.Y)
		}
	case tea.MouseRelease:
		if m.dragging {
			m.appendPoint(msg.X, msg.Y)
			m.dragging = false
			m.recognize()
		}
	}
	return m, nil
}

func (m *Model) appendPoint(col, row int) {
	x, y := m.grid.pixelToLayout(col, row)
	elapsed := time.Since(m.startedAt).Milliseconds()
	m.rawPoints = append(m.rawPoints, gesture.RawPoint{X: x, Y: y, T: elapsed})
	m.pathCells[[2]int{col, row}] = true
	if label, ok := m.grid.nearestCell(col, row); ok {
		m.tracedKeys[label] = true
	}
}

func (m *Model) resetPath() {
	m.rawPoints = nil
	m.pathCells = map[[2]int]bool{}
	m.tracedKeys = map[string]bool{}
	m.candidates = nil
	m.errMsg = ""
	m.table.SetRows(nil)
}

func (m *Model) recognize() {
	if !m.engine.IsInitialized() {
		m.errMsg = "engine not initialized"
		return
	}
	path := gesture.RawPath{Points: m.rawPoints}
	if path.IsEmpty() {
		m.errMsg = "path too short"
		return
	}
	candidates := m.engine.Recognize(path, m.maxCandidates)
	if candidates == nil {
		lastErr := m.engine.GetLastError()
		if lastErr.Code != gesture.ErrNone {
			m.errMsg = lastErr.Error()
		}
	}
	m.candidates = candidates
	rows := make([]table.Row, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), c.Word, fmt.Sprintf("%.3f", c.Confidence)})
	}
	m.table.SetRows(rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("glidetype demo — layout %s", m.layout.LanguageTag)))
	b.WriteString("\n\n")
	b.WriteString(m.grid.render(m.tracedKeys, m.pathCells))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(hintStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(panelStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("drag with the mouse to swipe · c to clear · q to quit"))
	return b.String()
}
