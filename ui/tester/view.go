package tester

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/regexblocks/internal/pattern"
)

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("205")
	secondaryColor = lipgloss.Color("240")
	successColor   = lipgloss.Color("46")
	errorColor     = lipgloss.Color("196")
	warningColor   = lipgloss.Color("214")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	patternStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236"))

	placeholderStyle = patternStyle.
				Foreground(secondaryColor).
				Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)

// Line offsets within View
const (
	PatternLine = 1
	SampleLine  = 2
)

const (
	copyLabel   = " copy "
	sampleLabel = "Test: "
)

// View renders the pattern display, the copy button, the sample input and
// the verdict
func (m *Model) View() string {
	title := "🧪 Tester"
	if m.focused {
		title += " *"
	}

	lines := []string{
		titleStyle.Render(title),
		m.renderPatternLine(),
		m.renderSampleLine(),
		m.renderVerdict(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) displayStyle() lipgloss.Style {
	style := patternStyle
	if m.result.Empty {
		style = placeholderStyle
	}
	switch m.flash {
	case FlashCopied:
		style = style.Background(successColor).Foreground(lipgloss.Color("0"))
	case FlashFailed:
		style = style.Background(errorColor).Foreground(lipgloss.Color("0"))
	}
	return style
}

func (m *Model) displayText() string {
	return " " + m.result.Display() + " "
}

func (m *Model) renderPatternLine() string {
	return m.displayStyle().Render(m.displayText()) + " " + buttonStyle.Render(copyLabel)
}

// CopyButtonAt reports whether column x of the pattern line is on the copy
// button
func (m *Model) CopyButtonAt(x int) bool {
	start := lipgloss.Width(m.displayText()) + 1
	return x >= start && x < start+lipgloss.Width(copyLabel)
}

func verdictColor(v pattern.Verdict) lipgloss.Color {
	switch v {
	case pattern.VerdictMatch:
		return successColor
	case pattern.VerdictNoMatch:
		return errorColor
	case pattern.VerdictInvalid:
		return warningColor
	default:
		return secondaryColor
	}
}

func (m *Model) renderSampleLine() string {
	label := lipgloss.NewStyle().
		Foreground(verdictColor(m.eval.Verdict)).
		Bold(m.eval.Verdict != pattern.VerdictNeutral).
		Render(sampleLabel)
	return label + m.sampleInput.View()
}

func (m *Model) renderVerdict() string {
	v := m.eval.Verdict
	style := lipgloss.NewStyle().Foreground(verdictColor(v))

	switch v {
	case pattern.VerdictNeutral:
		return labelStyle.Render("○ waiting for a test string")
	case pattern.VerdictInvalid:
		return style.Render("▲ " + v.String() + ": " + m.eval.Error)
	default:
		return style.Render("● " + v.String())
	}
}
