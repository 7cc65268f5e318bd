// Package demoui provides the Bubble Tea swipe-typing demo interface.
package demoui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dettmer/glidetype/internal/gesture"
)

// keyCell is a terminal-grid placement of one keyboard key.
type keyCell struct {
	label string
	col   int
	row   int
}

// gridLayout maps a gesture.KeyboardLayout onto a fixed terminal character
// grid so pointer motion in the terminal can be translated back into layout
// coordinates for gesture.RawPoint construction.
type gridLayout struct {
	layout   gesture.KeyboardLayout
	cells    []keyCell
	cols     int
	rows     int
	cellW    int
	cellH    int
	originX  int
	originY  int
}

const (
	gridCellWidth  = 4
	gridCellHeight = 2
)

func newGridLayout(layout gesture.KeyboardLayout, originX, originY int) gridLayout {
	g := gridLayout{layout: layout, originX: originX, originY: originY, cellW: gridCellWidth, cellH: gridCellHeight}
	for _, key := range layout.Keys {
		if !key.IsCharacterKey() {
			continue
		}
		col := int(key.CenterX/layout.LayoutWidth*float64(colsForLayout(layout))) + originX
		row := int(key.CenterY/layout.LayoutHeight*float64(rowsForLayout(layout))) + originY
		g.cells = append(g.cells, keyCell{label: key.Label, col: col, row: row})
	}
	g.cols = colsForLayout(layout)
	g.rows = rowsForLayout(layout)
	return g
}

func colsForLayout(layout gesture.KeyboardLayout) int {
	return 10 * gridCellWidth
}

func rowsForLayout(layout gesture.KeyboardLayout) int {
	return 3 * gridCellHeight
}

// pixelToLayout converts a terminal (col, row) cell to layout-local
// coordinates in the [0, LayoutWidth] x [0, LayoutHeight] space.
func (g gridLayout) pixelToLayout(col, row int) (float64, float64) {
	relCol := float64(col - g.originX)
	relRow := float64(row - g.originY)
	x := relCol / float64(g.cols) * g.layout.LayoutWidth
	y := relRow / float64(g.rows) * g.layout.LayoutHeight
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > g.layout.LayoutWidth {
		x = g.layout.LayoutWidth
	}
	if y > g.layout.LayoutHeight {
		y = g.layout.LayoutHeight
	}
	return x, y
}

// nearestCell returns the label of the key whose grid cell is closest to
// (col, row), for highlighting the traced path.
func (g gridLayout) nearestCell(col, row int) (string, bool) {
	best := -1
	bestDist := 0
	for i, cell := range g.cells {
		dx := cell.col - col
		dy := cell.row - row
		dist := dx*dx + dy*dy
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return "", false
	}
	return g.cells[best].label, true
}

var (
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	tracedKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pathDotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A9EFF"))
)

// render draws the ASCII keyboard grid, highlighting keys that lie under the
// traced path and marking intermediate path samples with a dot.
func (g gridLayout) render(tracedLabels map[string]bool, pathCells map[[2]int]bool) string {
	if g.cols == 0 || g.rows == 0 {
		return ""
	}
	grid := make([][]rune, g.rows)
	for r := range grid {
		grid[r] = make([]rune, g.cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	for pos := range pathCells {
		c, r := pos[0], pos[1]
		if r >= 0 && r < g.rows && c >= 0 && c < g.cols {
			grid[r][c] = '.'
		}
	}

	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		var line strings.Builder
		c := 0
		for c < g.cols {
			label, atKey := labelAt(g.cells, c, r)
			if atKey {
				style := keyStyle
				if tracedLabels[label] {
					style = tracedKeyStyle
				}
				line.WriteString(style.Render(label))
				c += runewidth.StringWidth(label)
				continue
			}
			if grid[r][c] == '.' {
				line.WriteString(pathDotStyle.Render("."))
			} else {
				line.WriteByte(' ')
			}
			c++
		}
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func labelAt(cells []keyCell, col, row int) (string, bool) {
	for _, cell := range cells {
		if cell.col == col && cell.row == row {
			return cell.label, true
		}
	}
	return "", false
}
