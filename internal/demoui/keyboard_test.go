package demoui

import (
	"testing"

	"github.com/dettmer/glidetype/internal/gesturetest"
)

func TestPixelToLayoutClampsToLayoutBounds(t *testing.T) {
	layout := gesturetest.QwertyLayout()
	g := newGridLayout(layout, 2, 1)

	x, y := g.pixelToLayout(2, 1)
	if x != 0 || y != 0 {
		t.Fatalf("expected origin to map to (0,0), got (%v,%v)", x, y)
	}

	x, y = g.pixelToLayout(2+g.cols+50, 1+g.rows+50)
	if x != layout.LayoutWidth || y != layout.LayoutHeight {
		t.Fatalf("expected far-out-of-bounds cell to clamp to (%v,%v), got (%v,%v)", layout.LayoutWidth, layout.LayoutHeight, x, y)
	}

	x, y = g.pixelToLayout(-100, -100)
	if x != 0 || y != 0 {
		t.Fatalf("expected negative cell to clamp to (0,0), got (%v,%v)", x, y)
	}
}

func TestNearestCellFindsClosestKey(t *testing.T) {
	layout := gesturetest.QwertyLayout()
	g := newGridLayout(layout, 0, 0)

	first := g.cells[0]
	label, ok := g.nearestCell(first.col, first.row)
	if !ok {
		t.Fatalf("expected a nearest cell to be found")
	}
	if label != first.label {
		t.Fatalf("expected nearest cell at its own coordinates to be %q, got %q", first.label, label)
	}
}

func TestNearestCellReturnsFalseWithNoCells(t *testing.T) {
	g := gridLayout{}
	if _, ok := g.nearestCell(0, 0); ok {
		t.Fatalf("expected no match for an empty grid")
	}
}

func TestRenderHighlightsTracedKeysAndPathDots(t *testing.T) {
	layout := gesturetest.QwertyLayout()
	g := newGridLayout(layout, 0, 0)

	first := g.cells[0]
	traced := map[string]bool{first.label: true}
	pathCells := map[[2]int]bool{{first.col + 1, first.row}: true}

	out := g.render(traced, pathCells)
	if out == "" {
		t.Fatalf("expected non-empty render output")
	}
}

func TestRenderEmptyGridReturnsEmptyString(t *testing.T) {
	g := gridLayout{}
	if out := g.render(nil, nil); out != "" {
		t.Fatalf("expected empty output for an empty grid, got %q", out)
	}
}
