package sequence

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/regexblocks/internal/layout"
	"github.com/cheerioskun/regexblocks/internal/messages"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/ui/chip"
)

// gap is the number of cells between two chips
const gap = 1

// Model is the horizontally scrolling row of assembled blocks. It renders
// the sequence it is given and applies keyboard edits to it.
type Model struct {
	// Data
	seq *models.Sequence

	// Geometry, recomputed by Reflow
	chips        []string
	spans        []layout.Span
	contentWidth int
	overflow     bool
	offset       int

	// UI state
	cursor    int
	dragging  uint64 // Block carrying the dragging marker, 0 for none
	editMode  bool
	editInput textinput.Model
	editID    uint64
	original  string // Value before editing started, restored on esc

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a sequence panel over seq
func NewModel(seq *models.Sequence) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = " "
	input.CharLimit = 256

	m := &Model{
		seq:       seq,
		editInput: input,
		width:     40,
		height:    4,
	}
	m.Reflow()
	return m
}

// Update handles messages for the sequence panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle edit mode input
	if m.editMode {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter":
				m.stopEdit()
				return m, nil
			case "esc":
				m.seq.SetValue(m.editID, m.original)
				m.stopEdit()
				return m, m.emitChangedCmd()
			default:
				m.editInput, cmd = m.editInput.Update(msg)
				m.seq.SetValue(m.editID, m.editInput.Value())
				m.Reflow()
				return m, tea.Batch(cmd, m.emitChangedCmd())
			}
		default:
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	if !m.focused {
		return m, nil
	}

	// Handle normal navigation
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "home", "g":
			m.cursor = 0
			m.Reflow()
		case "end", "G":
			m.cursor = m.seq.Len() - 1
			m.Reflow()
		case "shift+left", "H":
			return m, m.moveBlock(-1)
		case "shift+right", "L":
			return m, m.moveBlock(1)
		case "d", "delete", "backspace":
			return m, m.removeAtCursor()
		case "enter", "e":
			return m, m.startEdit()
		}
	}

	return m, nil
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
	m.Reflow()
}

func (m *Model) Blur() {
	m.focused = false
	if m.editMode {
		m.stopEdit()
	}
	m.Reflow()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

// IsEditing reports whether a block value is being edited
func (m *Model) IsEditing() bool {
	return m.editMode
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.Reflow()
}

// Cursor returns the index of the selected block
func (m *Model) Cursor() int {
	return m.cursor
}

// SetCursor selects the block at index i
func (m *Model) SetCursor(i int) {
	m.cursor = i
	m.Reflow()
}

// SelectBlock moves the cursor to the block with the given ID
func (m *Model) SelectBlock(id uint64) {
	if i := m.seq.IndexOf(id); i >= 0 {
		m.cursor = i
	}
	m.Reflow()
}

// SetDragging applies the dragging marker to a block; 0 clears it
func (m *Model) SetDragging(id uint64) {
	m.dragging = id
	m.Reflow()
}

// Dragging returns the block carrying the dragging marker
func (m *Model) Dragging() uint64 {
	return m.dragging
}

// Overflow reports whether the row is wider than the panel, in which case
// the scrollbar is shown
func (m *Model) Overflow() bool {
	return m.overflow
}

// Offset returns the horizontal scroll offset in cells
func (m *Model) Offset() int {
	return m.offset
}

// Spans returns the chip extents in row content coordinates
func (m *Model) Spans() []layout.Span {
	return m.spans
}

// BlockAt returns the ID of the block under visible column x of the row
func (m *Model) BlockAt(x int) (uint64, bool) {
	i := layout.HitTest(m.spans, x+m.offset)
	if i < 0 {
		return 0, false
	}
	return m.spans[i].ID, true
}

// InsertionIndex returns where the dragged block lands for a pointer at
// visible column x of the row
func (m *Model) InsertionIndex(x int, dragging uint64) int {
	return layout.InsertionIndex(m.spans, dragging, x+m.offset)
}

// Remove deletes a block, keeping the cursor in range
func (m *Model) Remove(id uint64) tea.Cmd {
	if m.editMode && m.editID == id {
		m.stopEdit()
	}
	if !m.seq.Remove(id) {
		return nil
	}
	m.clampCursor()
	m.Reflow()
	return m.emitChangedCmd()
}

// Reflow recomputes chip extents, overflow state and scroll offset. It runs
// after every change to the sequence or the panel size.
func (m *Model) Reflow() {
	m.clampCursor()

	blocks := m.seq.Blocks()
	m.chips = m.chips[:0]
	m.spans = m.spans[:0]

	x := 0
	for i, b := range blocks {
		rendered := m.renderChip(i, b)
		w := chip.Width(rendered)
		m.chips = append(m.chips, rendered)
		m.spans = append(m.spans, layout.Span{ID: b.ID, Start: x, Width: w})
		x += w + gap
	}

	m.contentWidth = x
	if x > 0 {
		m.contentWidth = x - gap
	}

	visible := m.visibleWidth()
	m.overflow = layout.Overflows(m.contentWidth, visible)
	m.offset = layout.ScrollOffset(m.spans, m.cursor, m.offset, visible, m.contentWidth)
}

func (m *Model) renderChip(i int, b models.Block) string {
	state := chip.StateNormal
	switch {
	case b.ID == m.dragging:
		state = chip.StateDragging
	case m.focused && i == m.cursor:
		state = chip.StateSelected
	}

	if m.editMode && b.ID == m.editID {
		return chip.Render(b.Kind, b.Value, state, m.editInput.View())
	}
	return chip.RenderBlock(b, state)
}

func (m *Model) visibleWidth() int {
	if m.width < 1 {
		return 1
	}
	return m.width
}

func (m *Model) clampCursor() {
	if n := m.seq.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	n := m.seq.Len()
	if n == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.Reflow()
}

func (m *Model) moveBlock(delta int) tea.Cmd {
	b, ok := m.seq.At(m.cursor)
	if !ok {
		return nil
	}
	to := m.cursor + delta
	if to < 0 || to >= m.seq.Len() {
		return nil
	}
	m.seq.Move(b.ID, to)
	m.cursor = to
	m.Reflow()
	return m.emitChangedCmd()
}

func (m *Model) removeAtCursor() tea.Cmd {
	b, ok := m.seq.At(m.cursor)
	if !ok {
		return nil
	}
	return m.Remove(b.ID)
}

func (m *Model) startEdit() tea.Cmd {
	b, ok := m.seq.At(m.cursor)
	if !ok || !b.Editable() {
		return nil
	}

	m.editMode = true
	m.editID = b.ID
	m.original = b.Value
	m.editInput.SetValue(b.Value)
	m.editInput.CursorEnd()
	cmd := m.editInput.Focus()
	m.Reflow()
	return cmd
}

func (m *Model) stopEdit() {
	m.editMode = false
	m.editID = 0
	m.original = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.Reflow()
}

// emitChangedCmd notifies the parent that the sequence changed
func (m *Model) emitChangedCmd() tea.Cmd {
	rev := m.seq.Revision
	return func() tea.Msg {
		return messages.SequenceChangedMsg{
			Revision:        rev,
			SourceComponent: "sequence_panel",
		}
	}
}
