package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/internal/utils"
	"github.com/cheerioskun/regexblocks/ui/tester"
)

// dragState is the phase of a mouse gesture
type dragState int

const (
	dragIdle dragState = iota
	dragActive
)

// dragSource is where the dragged block came from
type dragSource int

const (
	fromPalette  dragSource = iota // A fresh working copy of a template
	fromSequence                   // An existing block being moved
)

// gesture tracks one press-move-release cycle
type gesture struct {
	state  dragState
	source dragSource
	block  models.Block
	placed bool // Whether the block is currently in the sequence
}

// dragMarkMsg applies the dragging marker one update after the press, so
// the frame drawn for the press still shows the unmarked block
type dragMarkMsg struct {
	id uint64
}

func markCmd(id uint64) tea.Cmd {
	return func() tea.Msg { return dragMarkMsg{id: id} }
}

// handleMouse routes a mouse event through the gesture state machine
func (m *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.pressLeft(msg.X, msg.Y)
		case tea.MouseButtonRight:
			return m.pressRight(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.drag.state == dragActive {
			m.dragOver(msg.X, msg.Y)
		}

	case tea.MouseActionRelease:
		if m.drag.state == dragActive {
			m.endDrag()
		}
	}
	return nil
}

func (m *AppModel) pressLeft(x, y int) tea.Cmd {
	g := m.geometry()

	if cx, cy, ok := g.palette.content(x, y); ok {
		t, ok := m.palette.TemplateAt(cx, cy)
		if !ok {
			return nil
		}
		b := t.Instantiate()
		m.drag = gesture{state: dragActive, source: fromPalette, block: b}
		m.status = "Dragging " + b.Kind.String()
		utils.Debug("drag start: template %s as block %d", b.Kind, b.ID)
		return markCmd(b.ID)
	}

	if cx, ok := g.sequenceRow(x, y); ok {
		id, ok := m.sequence.BlockAt(cx)
		if !ok {
			return m.focusPanel(SequencePanel)
		}
		i := m.seq.IndexOf(id)
		b, _ := m.seq.At(i)
		m.drag = gesture{state: dragActive, source: fromSequence, block: b, placed: true}
		cmd := m.focusPanel(SequencePanel)
		m.sequence.SelectBlock(id)
		m.status = "Moving " + b.Kind.String()
		utils.Debug("drag start: block %d at %d", id, i)
		return tea.Batch(cmd, markCmd(id))
	}

	if cx, cy, ok := g.tester.content(x, y); ok {
		switch cy {
		case tester.PatternLine:
			if m.tester.CopyButtonAt(cx) {
				return m.copyPattern()
			}
		case tester.SampleLine:
			return m.focusPanel(TesterPanel)
		}
	}
	return nil
}

// pressRight removes the block under the pointer
func (m *AppModel) pressRight(x, y int) tea.Cmd {
	// The dragged block is owned by the gesture until release
	if m.drag.state == dragActive {
		return nil
	}
	cx, ok := m.geometry().sequenceRow(x, y)
	if !ok {
		return nil
	}
	id, ok := m.sequence.BlockAt(cx)
	if !ok {
		return nil
	}
	b, _ := m.seq.At(m.seq.IndexOf(id))
	cmd := m.sequence.Remove(id)
	m.status = "Removed " + b.Kind.String()
	m.refresh()
	return cmd
}

// dragOver places the dragged block live while the pointer is over the
// sequence panel
func (m *AppModel) dragOver(x, y int) {
	g := m.geometry()
	if !g.sequence.contains(y) {
		return
	}

	id := m.drag.block.ID
	i := m.sequence.InsertionIndex(x-contentLeft, id)
	if !m.drag.placed {
		m.seq.Insert(i, m.drag.block)
		m.drag.placed = true
	} else {
		m.seq.Move(id, i)
	}
	m.sequence.SelectBlock(id)
}

// endDrag finishes the gesture and rebuilds everything derived from the
// sequence
func (m *AppModel) endDrag() {
	g := m.drag
	m.drag = gesture{}
	m.sequence.SetDragging(0)

	switch {
	case g.source == fromPalette && g.placed:
		m.status = "Added " + g.block.Kind.String()
	case g.source == fromPalette:
		m.status = "Nothing added"
	default:
		m.status = "Moved " + g.block.Kind.String()
	}
	utils.Debug("drag end: block %d placed=%v", g.block.ID, g.placed)

	m.rebuildAll()
}

// applyMark sets the dragging marker if the gesture is still in progress
func (m *AppModel) applyMark(msg dragMarkMsg) {
	if m.drag.state != dragActive || m.drag.block.ID != msg.id {
		return
	}
	m.sequence.SetDragging(msg.id)
}
