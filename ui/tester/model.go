// Package tester is the panel that shows the built pattern, offers the copy
// action and evaluates the pattern against a sample as the user types.
package tester

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/regexblocks/internal/messages"
	"github.com/cheerioskun/regexblocks/internal/pattern"
	"github.com/cheerioskun/regexblocks/internal/utils"
)

// DefaultFlashDuration is how long the copy confirmation stays visible
const DefaultFlashDuration = 150 * time.Millisecond

// Flash is the transient highlight of the pattern display after a copy
type Flash int

const (
	FlashNone Flash = iota
	FlashCopied
	FlashFailed
)

// flashResetMsg clears the flash set by copy number seq
type flashResetMsg struct {
	seq int
}

// Model represents the tester panel state
type Model struct {
	// Data
	result pattern.Result
	eval   pattern.Evaluation

	// UI state
	sampleInput textinput.Model
	flash       Flash
	flashSeq    int // Incremented per copy; stale resets are ignored
	flashDelay  time.Duration
	status      string

	// Component state
	focused bool
	width   int
	height  int
}

// NewModel creates a tester panel. flashDelay <= 0 uses DefaultFlashDuration.
func NewModel(flashDelay time.Duration) *Model {
	if flashDelay <= 0 {
		flashDelay = DefaultFlashDuration
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Type a test string..."
	input.CharLimit = 1024

	m := &Model{
		result:      pattern.Build(nil),
		sampleInput: input,
		flashDelay:  flashDelay,
		width:       40,
		height:      5,
	}
	m.evaluate()
	return m
}

// Update handles messages for the tester panel
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.PatternUpdatedMsg:
		m.SetResult(msg.Result)
		return m, nil

	case messages.CopyResultMsg:
		return m, m.startFlash(msg)

	case flashResetMsg:
		if msg.seq == m.flashSeq {
			m.flash = FlashNone
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		m.sampleInput, cmd = m.sampleInput.Update(msg)
		m.evaluate()
		return m, cmd
	}

	m.sampleInput, cmd = m.sampleInput.Update(msg)
	return m, cmd
}

// Component interface methods

func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.sampleInput.Focus()
}

func (m *Model) Blur() {
	m.focused = false
	m.sampleInput.Blur()
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Data management methods

// SetResult replaces the displayed pattern and re-runs the test
func (m *Model) SetResult(r pattern.Result) {
	m.result = r
	m.evaluate()
}

// Result returns the displayed build result
func (m *Model) Result() pattern.Result {
	return m.result
}

// SetSample replaces the sample text and re-runs the test
func (m *Model) SetSample(s string) {
	m.sampleInput.SetValue(s)
	m.evaluate()
}

// Sample returns the current sample text
func (m *Model) Sample() string {
	return m.sampleInput.Value()
}

// Evaluation returns the outcome of the latest test
func (m *Model) Evaluation() pattern.Evaluation {
	return m.eval
}

// Verdict returns the current tester state
func (m *Model) Verdict() pattern.Verdict {
	return m.eval.Verdict
}

// Flash returns the current copy highlight
func (m *Model) Flash() Flash {
	return m.flash
}

// Status returns the message of the latest copy attempt
func (m *Model) Status() string {
	return m.status
}

func (m *Model) evaluate() {
	m.eval = pattern.Test(m.result.Pattern, m.sampleInput.Value())
}

// startFlash highlights the display and schedules the reset. A copy that
// lands while a flash is showing restarts the timer.
func (m *Model) startFlash(msg messages.CopyResultMsg) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq

	if msg.Err != nil {
		m.flash = FlashFailed
		m.status = "Copy failed: " + msg.Err.Error()
		utils.Warning("copy failed: %v", msg.Err)
	} else {
		m.flash = FlashCopied
		m.status = "Copied to " + msg.Method
	}

	return tea.Tick(m.flashDelay, func(time.Time) tea.Msg {
		return flashResetMsg{seq: seq}
	})
}
