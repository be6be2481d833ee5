package palette

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/regexblocks/internal/layout"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/ui/chip"
)

// headingWidth is the column the chips of every group start at
const headingWidth = 19

// AddTemplateMsg asks the parent to append a working copy of Template to
// the sequence
type AddTemplateMsg struct {
	Template models.Template
}

// row is one group of the palette, the unit of up/down navigation
type row struct {
	group models.Group
	first int // Flat index of the row's first template
}

// line is one rendered palette line. A group whose chips do not fit the
// width continues on lines with an empty heading.
type line struct {
	heading string
	chips   []string
	spans   []layout.Span // Chip extents from the start of the line; ID is the flat index
}

// Model is the palette of draggable block templates
type Model struct {
	// Data
	templates []models.Template
	rows      []row
	lines     []line
	rebuilds  int

	// UI state
	cursor  int // Flat index into templates
	focused bool
	width   int
	height  int

	// Styles
	titleStyle   lipgloss.Style
	headingStyle lipgloss.Style
	emptyStyle   lipgloss.Style
}

// NewModel creates a palette whose editable templates start with defaultValue
func NewModel(defaultValue string) *Model {
	m := &Model{
		templates: models.Catalog(defaultValue),
		width:     80,
		height:    8,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),

		headingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(headingWidth),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
	m.Rebuild()
	return m
}

// Rebuild regenerates the palette rows from the catalog. It runs at startup,
// after every drag and on resize, so a fresh source is always on offer and
// every template stays within the width.
func (m *Model) Rebuild() {
	m.rows = m.rows[:0]
	m.lines = m.lines[:0]

	first := 0
	for _, g := range models.Groups(m.templates) {
		m.rows = append(m.rows, row{group: g, first: first})

		cur := line{heading: g.Heading}
		x := headingWidth
		for i, t := range g.Templates {
			state := chip.StateNormal
			if m.focused && first+i == m.cursor {
				state = chip.StateSelected
			}
			rendered := chip.RenderTemplate(t, state)
			w := chip.Width(rendered)

			// Wrap, but never leave a line without a chip
			if len(cur.chips) > 0 && x+w > m.width {
				m.lines = append(m.lines, cur)
				cur = line{}
				x = headingWidth
			}

			cur.chips = append(cur.chips, rendered)
			cur.spans = append(cur.spans, layout.Span{ID: uint64(first + i), Start: x, Width: w})
			x += w + 1
		}
		m.lines = append(m.lines, cur)
		first += len(g.Templates)
	}
	m.rebuilds++
}

// Rebuilds returns how many times the palette has been regenerated
func (m *Model) Rebuilds() int {
	return m.rebuilds
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l":
			m.moveCursor(1)
		case "left", "h":
			m.moveCursor(-1)
		case "down", "j":
			m.moveRow(1)
		case "up", "k":
			m.moveRow(-1)
		case "enter", " ":
			t, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return AddTemplateMsg{Template: t} }
		}
	}

	return m, nil
}

// View renders the component
func (m *Model) View() string {
	title := "🧱 Palette"
	if m.focused {
		title += " *"
	}

	lines := []string{m.titleStyle.Render(title)}

	if len(m.lines) == 0 {
		lines = append(lines, m.emptyStyle.Render("No blocks available"))
		return strings.Join(lines, "\n")
	}

	for _, l := range m.lines {
		lines = append(lines, m.headingStyle.Render(l.heading)+strings.Join(l.chips, " "))
	}

	return strings.Join(lines, "\n")
}

// TemplateAt returns the template under a point given in content
// coordinates: line 0 is the title, the rest are the rendered lines
func (m *Model) TemplateAt(x, y int) (models.Template, bool) {
	l := y - 1
	if l < 0 || l >= len(m.lines) {
		return models.Template{}, false
	}
	i := layout.HitTest(m.lines[l].spans, x)
	if i < 0 {
		return models.Template{}, false
	}
	flat := m.flat()
	return flat[m.lines[l].spans[i].ID], true
}

// Selected returns the template under the cursor
func (m *Model) Selected() (models.Template, bool) {
	if m.cursor < 0 || m.cursor >= len(m.templates) {
		return models.Template{}, false
	}
	return m.flat()[m.cursor], true
}

// flat returns templates in display order
func (m *Model) flat() []models.Template {
	out := make([]models.Template, 0, len(m.templates))
	for _, r := range m.rows {
		out = append(out, r.group.Templates...)
	}
	return out
}

func (m *Model) moveCursor(delta int) {
	n := len(m.flat())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
	m.Rebuild()
}

func (m *Model) moveRow(delta int) {
	if len(m.rows) == 0 {
		return
	}
	cur := m.rowOf(m.cursor)
	col := m.cursor - m.rows[cur].first
	next := (cur + delta + len(m.rows)) % len(m.rows)
	if col >= len(m.rows[next].group.Templates) {
		col = len(m.rows[next].group.Templates) - 1
	}
	m.cursor = m.rows[next].first + col
	m.Rebuild()
}

func (m *Model) rowOf(index int) int {
	for i, r := range m.rows {
		if index >= r.first && index < r.first+len(r.group.Templates) {
			return i
		}
	}
	return 0
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
	m.Rebuild()
}

func (m *Model) Blur() {
	m.focused = false
	m.Rebuild()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	resized := width != m.width
	m.width = width
	m.height = height
	if resized {
		m.Rebuild()
	}
}

// Summary describes the palette contents
func (m *Model) Summary() string {
	return fmt.Sprintf("%d blocks in %d groups", len(m.templates), len(m.rows))
}
