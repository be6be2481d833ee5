package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/regexblocks/ui/sequence"
)

// Content heights of the fixed-size panels
const (
	sequenceLines = 3
	testerLines   = 4
)

// panelRect is the vertical extent of a bordered panel on screen
type panelRect struct {
	top    int
	height int // Including both borders
}

func (r panelRect) contains(y int) bool {
	return y >= r.top && y < r.top+r.height
}

// content converts a screen point to panel content coordinates
func (r panelRect) content(x, y int) (int, int, bool) {
	cy := y - r.top - 1
	cx := x - contentLeft
	if cy < 0 || cy >= r.height-2 || cx < 0 {
		return 0, 0, false
	}
	return cx, cy, true
}

// screenGeometry mirrors the vertical stacking done by renderLayout
type screenGeometry struct {
	palette  panelRect
	sequence panelRect
	tester   panelRect
}

func (m *AppModel) geometry() screenGeometry {
	var g screenGeometry
	y := headerHeight

	g.palette = panelRect{top: y, height: lipgloss.Height(m.palette.View()) + 2}
	y += g.palette.height
	g.sequence = panelRect{top: y, height: sequenceLines + 2}
	y += g.sequence.height
	g.tester = panelRect{top: y, height: testerLines + 2}

	return g
}

// sequenceRow returns the row column under a screen point on the block row
func (g screenGeometry) sequenceRow(x, y int) (int, bool) {
	cx, cy, ok := g.sequence.content(x, y)
	return cx, ok && cy == sequence.RowLine
}
