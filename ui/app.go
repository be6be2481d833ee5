package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cheerioskun/regexblocks/internal/clipboard"
	"github.com/cheerioskun/regexblocks/internal/export"
	"github.com/cheerioskun/regexblocks/internal/messages"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/internal/pattern"
	"github.com/cheerioskun/regexblocks/internal/utils"
	exportui "github.com/cheerioskun/regexblocks/ui/export"
	"github.com/cheerioskun/regexblocks/ui/palette"
	"github.com/cheerioskun/regexblocks/ui/sequence"
	"github.com/cheerioskun/regexblocks/ui/tester"
	"github.com/spf13/afero"
)

// FocusedPanel represents which panel is currently focused
type FocusedPanel int

const (
	PalettePanel FocusedPanel = iota
	SequencePanel
	TesterPanel
)

const (
	headerHeight = 2
	contentLeft  = 2 // Border plus padding
)

// Options configures the application model
type Options struct {
	DefaultValue string           // Value of editable templates
	CopyFlash    time.Duration    // How long the copy confirmation shows
	Clipboard    clipboard.Writer // Where copies go
	Exporter     *export.Service  // Writes Go snippets
}

// AppModel represents the main application model
type AppModel struct {
	// Core state
	seq          *models.Sequence
	lastRevision uint64

	// Components
	palette   *palette.Model
	sequence  *sequence.Model
	tester    *tester.Model
	export    *exportui.Model
	clipboard clipboard.Writer

	// UI state
	focused      FocusedPanel
	width        int
	height       int
	panels       []FocusedPanel
	currentPanel int
	drag         gesture

	// Status
	status   string
	quitting bool
}

// NewAppModel creates a new application model
func NewAppModel(opts Options) *AppModel {
	if opts.DefaultValue == "" {
		opts.DefaultValue = models.DefaultValue
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewSystem(nil)
	}
	if opts.Exporter == nil {
		opts.Exporter = export.NewService(afero.NewOsFs())
	}

	seq := models.NewSequence()
	m := &AppModel{
		seq:       seq,
		palette:   palette.NewModel(opts.DefaultValue),
		sequence:  sequence.NewModel(seq),
		tester:    tester.NewModel(opts.CopyFlash),
		export:    exportui.NewModel(opts.Exporter),
		clipboard: opts.Clipboard,
		width:     80,
		height:    24,
		panels:    []FocusedPanel{PalettePanel, SequencePanel, TesterPanel},
		status:    "Ready",
	}
	m.focusPanel(PalettePanel)
	m.resize()
	m.refresh()
	return m
}

// Sequence returns the sequence the UI is editing
func (m *AppModel) Sequence() *models.Sequence {
	return m.seq
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return func() tea.Msg {
		return messages.RefreshComponentsMsg{Reason: "startup"}
	}
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.seq.Revision != m.lastRevision {
		m.refresh()
	}
	return m, cmd
}

func (m *AppModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.export.IsVisible() {
			return nil
		}
		return m.handleMouse(msg)

	case dragMarkMsg:
		m.applyMark(msg)
		return nil

	case palette.AddTemplateMsg:
		m.addTemplate(msg.Template)
		return nil

	case messages.SequenceChangedMsg:
		utils.Debug("sequence changed by %s, revision %d", msg.SourceComponent, msg.Revision)
		return nil

	case messages.RefreshComponentsMsg:
		utils.Debug("refresh: %s", msg.Reason)
		m.rebuildAll()
		return nil

	case messages.CopyResultMsg:
		if msg.Err != nil {
			m.status = "Copy failed: " + msg.Err.Error()
		} else {
			m.status = "Copied " + msg.Text + " via " + msg.Method
		}
		m.tester, cmd = m.tester.Update(msg)
		return cmd

	case exportui.ExportModalCompletedMsg:
		if msg.Summary != nil {
			m.status = "Exported to " + msg.Summary.DestinationPath
		}
		return m.focusPanel(m.focused)

	case exportui.ExportModalCancelledMsg:
		m.status = "Export closed"
		return m.focusPanel(m.focused)
	}

	var cmds []tea.Cmd
	if m.export.IsVisible() {
		m.export, cmd = m.export.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.tester, cmd = m.tester.Update(msg)
	cmds = append(cmds, cmd)
	m.sequence, cmd = m.sequence.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	if m.export.IsVisible() {
		m.export, cmd = m.export.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "tab":
		return m.nextPanel()
	case "shift+tab":
		return m.prevPanel()
	case "ctrl+y":
		return m.copyPattern()
	case "ctrl+e":
		return m.openExport()
	}

	if !m.textInputActive() {
		switch msg.String() {
		case "q":
			m.quitting = true
			return tea.Quit
		case "y":
			return m.copyPattern()
		case "?":
			m.status = "Drag blocks from the palette, right-click removes, ctrl+y copies"
			return nil
		}
	}

	switch m.focused {
	case PalettePanel:
		m.palette, cmd = m.palette.Update(msg)
	case SequencePanel:
		m.sequence, cmd = m.sequence.Update(msg)
	case TesterPanel:
		m.tester, cmd = m.tester.Update(msg)
	}
	return cmd
}

// textInputActive reports whether keys should go to a text field first
func (m *AppModel) textInputActive() bool {
	return m.focused == TesterPanel || m.sequence.IsEditing()
}

// addTemplate inserts a working copy after the sequence cursor
func (m *AppModel) addTemplate(t models.Template) {
	b := t.Instantiate()
	i := 0
	if m.seq.Len() > 0 {
		i = m.sequence.Cursor() + 1
	}
	m.seq.Insert(i, b)
	m.sequence.SelectBlock(b.ID)
	m.status = "Added " + b.Kind.String()
}

// refresh rebuilds the pattern from the sequence and re-runs the tester
func (m *AppModel) refresh() {
	blocks := m.seq.Blocks()
	for _, b := range blocks {
		if b.Kind == models.KindUnknown {
			utils.Debug("block %d has unknown kind, rendering nothing", b.ID)
		}
	}

	result := pattern.Build(blocks)
	m.tester, _ = m.tester.Update(messages.PatternUpdatedMsg{Result: result})
	m.sequence.Reflow()
	m.lastRevision = m.seq.Revision
}

// rebuildAll regenerates the palette and everything derived from the
// sequence
func (m *AppModel) rebuildAll() {
	m.palette.Rebuild()
	m.refresh()
}

// copyPattern writes the current pattern to the clipboard
func (m *AppModel) copyPattern() tea.Cmd {
	result := m.tester.Result()
	if result.Empty {
		m.status = "Nothing to copy"
		return nil
	}

	writer := m.clipboard
	text := result.Pattern
	return func() tea.Msg {
		err := writer.WriteText(text)
		method := "clipboard"
		if r, ok := writer.(interface{ LastMethod() clipboard.Method }); ok {
			method = r.LastMethod().String()
		}
		return messages.CopyResultMsg{Text: text, Method: method, Err: err}
	}
}

func (m *AppModel) openExport() tea.Cmd {
	result := m.tester.Result()
	if result.Empty {
		m.status = "Nothing to export"
		return nil
	}
	m.blurAll()
	m.export.SetSize(m.width, m.height)
	return m.export.Show(result.Pattern)
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return "Thanks for using RegexBlocks!\n"
	}

	if m.export.IsVisible() {
		return m.export.View()
	}

	return m.renderLayout()
}

// renderLayout stacks the header, the three panels and the status bar
func (m *AppModel) renderLayout() string {
	g := m.geometry()

	header := m.renderHeader()
	pal := m.renderPanel(PalettePanel, m.palette.View(), g.palette)
	seq := m.renderPanel(SequencePanel, m.sequence.View(), g.sequence)
	test := m.renderPanel(TesterPanel, m.tester.View(), g.tester)
	status := m.renderStatusPanel()

	return lipgloss.JoinVertical(lipgloss.Left, header, pal, seq, test, status)
}

// renderHeader creates the application header
func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("RegexBlocks - Visual Regex Builder")

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("Tab: Navigate | Drag: Add/Move | Right-click: Remove | ctrl+y: Copy | ctrl+e: Export | q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, ansi.Truncate(help, m.width, "…"))
}

func (m *AppModel) renderPanel(panel FocusedPanel, content string, r panelRect) string {
	style := m.getPanelStyle(panel, r.height-2)
	return style.Render(fitLines(content, m.contentWidth()))
}

// renderStatusPanel renders the status panel
func (m *AppModel) renderStatusPanel() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width-2).
		Padding(0, 1)

	statusParts := []string{
		fmt.Sprintf("Blocks: %d", m.seq.Len()),
		fmt.Sprintf("Verdict: %s", m.tester.Verdict()),
		fmt.Sprintf("Status: %s", m.status),
	}

	return style.Render(ansi.Truncate(strings.Join(statusParts, " | "), m.contentWidth(), "…"))
}

// Helper methods

func (m *AppModel) getPanelStyle(panel FocusedPanel, height int) lipgloss.Style {
	borderColor := lipgloss.Color("240")
	if panel == m.focused && !m.export.IsVisible() {
		borderColor = lipgloss.Color("205")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.width-2).
		Height(height).
		Padding(0, 1)
}

func (m *AppModel) contentWidth() int {
	if w := m.width - 2*contentLeft; w > 1 {
		return w
	}
	return 1
}

// fitLines truncates every line so panels never wrap, keeping hit-testing
// aligned with what is drawn
func fitLines(content string, width int) string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

func (m *AppModel) resize() {
	w := m.contentWidth()
	m.palette.SetSize(w, m.height)
	m.sequence.SetSize(w, sequenceLines)
	m.tester.SetSize(w, testerLines)
	m.export.SetSize(m.width, m.height)
}

func (m *AppModel) blurAll() {
	m.palette.Blur()
	m.sequence.Blur()
	m.tester.Blur()
}

// focusPanel moves keyboard focus to panel
func (m *AppModel) focusPanel(panel FocusedPanel) tea.Cmd {
	m.blurAll()
	m.focused = panel
	for i, p := range m.panels {
		if p == panel {
			m.currentPanel = i
		}
	}

	switch panel {
	case PalettePanel:
		m.palette.Focus()
	case SequencePanel:
		m.sequence.Focus()
	case TesterPanel:
		return m.tester.Focus()
	}
	return nil
}

func (m *AppModel) nextPanel() tea.Cmd {
	return m.focusPanel(m.panels[(m.currentPanel+1)%len(m.panels)])
}

func (m *AppModel) prevPanel() tea.Cmd {
	return m.focusPanel(m.panels[(m.currentPanel-1+len(m.panels))%len(m.panels)])
}
