package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/regexblocks/internal/export"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(60)

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	badStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// State is the step the export dialog is on
type State int

const (
	StateInput State = iota
	StateExporting
	StateSuccess
	StateError
)

// ExportModalCancelledMsg is sent when the dialog closes without a file
// having been written
type ExportModalCancelledMsg struct{}

// ExportModalCompletedMsg is sent when the dialog closes after a
// successful write
type ExportModalCompletedMsg struct {
	Summary *export.ExportSummary
}

// exportDoneMsg carries the result of the write back to the dialog
type exportDoneMsg struct {
	summary *export.ExportSummary
	err     error
}

// Model asks for a destination and writes the pattern as a Go file
type Model struct {
	path    textinput.Model
	service *export.Service

	state   State
	visible bool
	width   int
	height  int

	pattern string
	decl    string // Generated declaration line, empty when the pattern cannot be exported
	size    int    // Generated file size in bytes
	summary *export.ExportSummary
	message string // Validation error or the write outcome
}

// NewModel creates a hidden export dialog writing through service
func NewModel(service *export.Service) *Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = export.DefaultFileName
	ti.CharLimit = 256
	ti.Width = 48

	return &Model{path: ti, service: service}
}

// Show opens the dialog for pattern with the destination preset to the
// working directory
func (m *Model) Show(pattern string) tea.Cmd {
	m.visible = true
	m.state = StateInput
	m.pattern = pattern
	m.summary = nil
	m.message = ""

	m.decl, m.size = "", 0
	if src, err := m.service.RenderGo(pattern, export.ExportOptions{}); err == nil {
		m.decl = declLine(src)
		m.size = len(src)
	}

	dest, err := export.GetDefaultExportPath()
	if err != nil {
		dest = "./" + export.DefaultFileName
	}
	m.path.SetValue(dest)
	return m.path.Focus()
}

// Hide closes the dialog
func (m *Model) Hide() {
	m.visible = false
	m.state = StateInput
	m.path.Blur()
}

func (m *Model) IsVisible() bool {
	return m.visible
}

func (m *Model) State() State {
	return m.state
}

// SetPath replaces the destination path
func (m *Model) SetPath(path string) {
	m.path.SetValue(path)
	m.message = ""
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the dialog
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case StateInput:
			switch msg.String() {
			case "enter":
				return m, m.confirm()
			case "esc":
				m.Hide()
				return m, func() tea.Msg { return ExportModalCancelledMsg{} }
			}
			m.path, cmd = m.path.Update(msg)
			m.message = ""
			return m, cmd
		case StateExporting:
			return m, nil
		default:
			// Any key dismisses the outcome
			return m, m.close()
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.state = StateError
			m.message = msg.err.Error()
			return m, nil
		}
		m.state = StateSuccess
		m.summary = msg.summary
		m.message = fmt.Sprintf("Wrote %d bytes to %s", msg.summary.Bytes, msg.summary.DestinationPath)
		return m, nil

	default:
		if m.state == StateInput {
			m.path, cmd = m.path.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) close() tea.Cmd {
	summary := m.summary
	ok := m.state == StateSuccess
	m.Hide()
	if !ok {
		return func() tea.Msg { return ExportModalCancelledMsg{} }
	}
	return func() tea.Msg { return ExportModalCompletedMsg{Summary: summary} }
}

// View renders the dialog centred on the screen
func (m *Model) View() string {
	if !m.visible {
		return ""
	}

	var body []string
	switch m.state {
	case StateInput:
		body = m.inputBody()
	case StateExporting:
		body = []string{headStyle.Render("Exporting"), dimStyle.Render(m.dest())}
	case StateSuccess:
		body = []string{headStyle.Render("Export complete"), okStyle.Render(m.message), dimStyle.Render("any key closes")}
	case StateError:
		body = []string{headStyle.Render("Export failed"), badStyle.Render(m.message), dimStyle.Render("any key closes")}
	}

	box := frameStyle.Render(strings.Join(body, "\n\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) inputBody() []string {
	body := []string{headStyle.Render("Export as Go")}

	if m.decl != "" {
		body = append(body,
			codeStyle.Render(m.decl)+"\n"+dimStyle.Render(fmt.Sprintf("%d bytes", m.size)))
	} else {
		body = append(body, badStyle.Render("Pattern "+m.pattern+" cannot be exported"))
	}

	body = append(body, "Destination\n"+fieldStyle.Render(m.path.View()))
	if m.message != "" {
		body = append(body, badStyle.Render(m.message))
	}
	return append(body, dimStyle.Render("enter writes · esc cancels"))
}

// confirm validates the destination and starts the write
func (m *Model) confirm() tea.Cmd {
	dest := m.dest()

	if err := m.service.ValidateExportPath(dest); err != nil {
		m.message = err.Error()
		return nil
	}
	if m.decl == "" {
		if _, err := m.service.RenderGo(m.pattern, export.ExportOptions{}); err != nil {
			m.message = err.Error()
		}
		return nil
	}

	m.message = ""
	m.state = StateExporting

	service, pattern := m.service, m.pattern
	return func() tea.Msg {
		summary, err := service.ExportPattern(pattern, export.ExportOptions{
			DestinationPath: dest,
			Overwrite:       true,
		})
		return exportDoneMsg{summary: summary, err: err}
	}
}

func (m *Model) dest() string {
	return strings.TrimSpace(m.path.Value())
}

// declLine picks the variable declaration out of generated source
func declLine(src []byte) string {
	for _, l := range strings.Split(string(src), "\n") {
		if strings.HasPrefix(l, "var ") {
			return l
		}
	}
	return ""
}
