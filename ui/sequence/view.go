package sequence

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cheerioskun/regexblocks/internal/layout"
)

// Styles for sequence rendering
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	thumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Line offsets of the row and scrollbar within View
const (
	RowLine       = 1
	ScrollbarLine = 2
)

// View renders the title, the block row and the scrollbar line
func (m *Model) View() string {
	title := "🔗 Sequence"
	if m.focused {
		title += " *"
	}
	header := titleStyle.Render(title)
	if n := m.seq.Len(); n > 0 {
		header += infoStyle.Render(" " + pluralBlocks(n))
	}

	return strings.Join([]string{header, m.renderRow(), m.renderScrollbar()}, "\n")
}

func (m *Model) renderRow() string {
	if len(m.chips) == 0 {
		return emptyStyle.Render("Drag blocks here")
	}

	row := strings.Join(m.chips, strings.Repeat(" ", gap))
	if !m.overflow {
		return row
	}
	return ansi.Cut(row, m.offset, m.offset+m.visibleWidth())
}

// renderScrollbar draws the horizontal scrollbar when the row overflows,
// and an empty line otherwise so the panel height stays fixed
func (m *Model) renderScrollbar() string {
	if !m.overflow {
		return ""
	}

	track := m.visibleWidth()
	start, length := layout.Thumb(m.offset, track, m.contentWidth, track)

	return trackStyle.Render(strings.Repeat("─", start)) +
		thumbStyle.Render(strings.Repeat("━", length)) +
		trackStyle.Render(strings.Repeat("─", track-start-length))
}

func pluralBlocks(n int) string {
	if n == 1 {
		return "(1 block)"
	}
	return fmt.Sprintf("(%d blocks)", n)
}
