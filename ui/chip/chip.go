// Package chip renders blocks as single-line chips shared by the palette
// and the sequence row.
package chip

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/regexblocks/internal/layout"
	"github.com/cheerioskun/regexblocks/internal/models"
)

// State selects how a chip is highlighted
type State int

const (
	StateNormal State = iota
	StateSelected
	StateDragging
)

var (
	categoryColors = map[models.Category]lipgloss.Color{
		models.CategoryAnchor:   lipgloss.Color("69"),
		models.CategoryBoundary: lipgloss.Color("135"),
		models.CategoryLiteral:  lipgloss.Color("214"),
		models.CategoryChars:    lipgloss.Color("42"),
		models.CategoryRepeat:   lipgloss.Color("204"),
	}

	selectedColor = lipgloss.Color("205")
	draggingColor = lipgloss.Color("238")
	unknownColor  = lipgloss.Color("240")

	inputStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))
)

// Color returns the chip background for a category
func Color(c models.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return unknownColor
}

func baseStyle(kind models.Kind, state State) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(Color(kind.Category()))

	switch state {
	case StateSelected:
		style = style.Background(selectedColor).Bold(true)
	case StateDragging:
		style = style.Background(draggingColor).
			Foreground(lipgloss.Color("245")).
			Faint(true)
	}
	return style
}

// Render draws a block. Editable blocks show their value in an input box
// sized to the value; input, when non-empty, replaces that box (used while
// the value is being edited).
func Render(kind models.Kind, value string, state State, input string) string {
	style := baseStyle(kind, state)

	var parts []string
	parts = append(parts, style.Render(" "))

	if kind.Editable() {
		box := input
		if box == "" {
			box = inputStyle.Width(layout.InputWidth(value)).Render(value)
		}
		parts = append(parts, box)
		if label := kind.Label(); label != "" {
			parts = append(parts, style.Render(" "+label))
		}
	} else {
		parts = append(parts, style.Render(kind.Label()))
	}

	parts = append(parts, style.Render(" "))
	return strings.Join(parts, "")
}

// RenderBlock draws a sequence block
func RenderBlock(b models.Block, state State) string {
	return Render(b.Kind, b.Value, state, "")
}

// RenderTemplate draws a palette template
func RenderTemplate(t models.Template, state State) string {
	return Render(t.Kind, t.Value, state, "")
}

// Width returns the rendered width of a chip in cells
func Width(rendered string) int {
	return lipgloss.Width(rendered)
}
