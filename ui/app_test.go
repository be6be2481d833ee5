package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/cheerioskun/regexblocks/internal/export"
	"github.com/cheerioskun/regexblocks/internal/messages"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/ui/sequence"
	"github.com/cheerioskun/regexblocks/ui/tester"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type fakeClipboard struct {
	texts []string
	err   error
}

func (f *fakeClipboard) WriteText(s string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, s)
	return nil
}

func newTestApp(t *testing.T) (*AppModel, *fakeClipboard) {
	t.Helper()
	fc := &fakeClipboard{}
	m := NewAppModel(Options{
		CopyFlash: time.Millisecond,
		Clipboard: fc,
		Exporter:  export.NewService(afero.NewMemMapFs()),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, fc
}

// locate returns the screen cell of the first occurrence of text at or
// below line minY
func locate(t *testing.T, m *AppModel, text string, minY int) (int, int) {
	t.Helper()
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for y := minY; y < len(lines); y++ {
		if i := strings.Index(lines[y], text); i >= 0 {
			return ansi.StringWidth(lines[y][:i]), y
		}
	}
	t.Fatalf("%q not found on screen:\n%s", text, strings.Join(lines, "\n"))
	return 0, 0
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func press(x, y int) tea.MouseMsg {
	return mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y)
}

func motion(x, y int) tea.MouseMsg {
	return mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y)
}

func release(x, y int) tea.MouseMsg {
	return mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (m *AppModel) rowY() int {
	return m.geometry().sequence.top + 1 + sequence.RowLine
}

func currentPattern(m *AppModel) string {
	return m.tester.Result().Pattern
}

func TestDragFromPalette(t *testing.T) {
	m, _ := newTestApp(t)
	x, y := locate(t, m, " digit ", 0)
	rebuilds := m.palette.Rebuilds()

	_, cmd := m.Update(press(x+1, y))
	if m.drag.state != dragActive {
		t.Fatalf("press on palette did not start a drag")
	}
	if m.seq.Len() != 0 {
		t.Errorf("press alone inserted a block")
	}
	if m.sequence.Dragging() != 0 {
		t.Errorf("marker applied before the deferred command ran")
	}

	m.Update(cmd())
	id := m.drag.block.ID
	if m.sequence.Dragging() != id {
		t.Errorf("Dragging() = %d, want %d", m.sequence.Dragging(), id)
	}

	m.Update(motion(contentLeft, m.rowY()))
	if got := currentPattern(m); got != `\d` {
		t.Errorf("pattern while dragging = %q, want %q", got, `\d`)
	}

	m.Update(release(contentLeft, m.rowY()))
	if m.drag.state != dragIdle {
		t.Errorf("release did not end the drag")
	}
	if m.sequence.Dragging() != 0 {
		t.Errorf("marker not cleared on release")
	}
	if m.palette.Rebuilds() <= rebuilds {
		t.Errorf("palette not rebuilt after drag end")
	}
	if !strings.Contains(m.status, "Added chars:digit") {
		t.Errorf("status = %q", m.status)
	}

	// A second drag lands left of the first block
	x, y = locate(t, m, "str start", 0)
	_, cmd = m.Update(press(x, y))
	m.Update(cmd())
	m.Update(motion(contentLeft, m.rowY()))
	m.Update(release(contentLeft, m.rowY()))
	if got := currentPattern(m); got != `^\d` {
		t.Errorf("pattern = %q, want %q", got, `^\d`)
	}
}

func TestPaletteDragWithoutHoverAddsNothing(t *testing.T) {
	m, _ := newTestApp(t)
	x, y := locate(t, m, "word bound", 0)

	m.Update(press(x, y))
	m.Update(motion(x+3, y))
	m.Update(release(x+3, y))

	if m.seq.Len() != 0 {
		t.Errorf("sequence has %d blocks, want 0", m.seq.Len())
	}
	if m.status != "Nothing added" {
		t.Errorf("status = %q", m.status)
	}
}

func TestStaleMarkIgnored(t *testing.T) {
	m, _ := newTestApp(t)
	x, y := locate(t, m, "any char", 0)

	_, cmd := m.Update(press(x, y))
	m.Update(motion(contentLeft, m.rowY()))
	m.Update(release(contentLeft, m.rowY()))
	m.Update(cmd())

	if m.sequence.Dragging() != 0 {
		t.Errorf("mark applied after the gesture ended")
	}
}

func TestDragMovesSequenceBlock(t *testing.T) {
	m, _ := newTestApp(t)
	m.seq.Append(models.NewBlock(models.KindStrStart, ""))
	m.seq.Append(models.NewBlock(models.KindDigit, ""))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	x, y := locate(t, m, "str start", m.rowY())
	if y != m.rowY() {
		t.Fatalf("block found on line %d, row is %d", y, m.rowY())
	}

	_, cmd := m.Update(press(x, y))
	if m.focused != SequencePanel {
		t.Errorf("press on a block did not focus the sequence")
	}
	m.Update(cmd())
	m.Update(motion(contentLeft+60, y))
	if got := currentPattern(m); got != `\d^` {
		t.Errorf("pattern while moving = %q, want %q", got, `\d^`)
	}

	m.Update(release(contentLeft+60, y))
	if m.seq.Len() != 2 {
		t.Errorf("move changed the block count to %d", m.seq.Len())
	}
	if !strings.HasPrefix(m.status, "Moved") {
		t.Errorf("status = %q", m.status)
	}
}

func TestRightClickRemoves(t *testing.T) {
	m, _ := newTestApp(t)
	m.seq.Append(models.NewBlock(models.KindWhitespace, ""))
	m.seq.Append(models.NewBlock(models.KindDigit, ""))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	x, y := locate(t, m, "whitespace", m.rowY())
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, x, y))

	if got := currentPattern(m); got != `\d` {
		t.Errorf("pattern after remove = %q, want %q", got, `\d`)
	}

	// Right-click on empty space does nothing
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, contentLeft+80, y))
	if m.seq.Len() != 1 {
		t.Errorf("sequence has %d blocks, want 1", m.seq.Len())
	}
}

func TestRightClickDuringDragIgnored(t *testing.T) {
	m, _ := newTestApp(t)
	m.seq.Append(models.NewBlock(models.KindDigit, ""))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	x, y := locate(t, m, "whitespace", 0)
	_, cmd := m.Update(press(x, y))
	m.Update(cmd())
	m.Update(motion(contentLeft, m.rowY()))
	if m.seq.Len() != 2 {
		t.Fatalf("dragged block not placed, sequence has %d blocks", m.seq.Len())
	}

	// Right-click on the placed block and on the other one
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, contentLeft, m.rowY()))
	bx, by := locate(t, m, "digit", m.rowY())
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, bx, by))
	if m.seq.Len() != 2 {
		t.Errorf("right-click during a drag removed a block, %d left", m.seq.Len())
	}

	m.Update(release(contentLeft, m.rowY()))
	if got := currentPattern(m); got != `\s\d` {
		t.Errorf("pattern = %q, want %q", got, `\s\d`)
	}
}

func TestNarrowTerminalPalette(t *testing.T) {
	m, _ := newTestApp(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	screen := strings.Split(ansi.Strip(m.View()), "\n")
	for y, l := range screen {
		if w := ansi.StringWidth(l); w > 80 {
			t.Errorf("line %d is %d cells wide: %q", y, w, l)
		}
	}

	for _, k := range models.Kinds {
		label := k.Label()
		if label == "" {
			continue
		}
		x, y := locate(t, m, label, 0)
		if y >= m.geometry().sequence.top {
			t.Errorf("%q not drawn in the palette", label)
			continue
		}
		m.Update(press(x, y))
		if m.drag.state != dragActive || m.drag.block.Kind != k {
			t.Errorf("press on %q dragged %v", label, m.drag.block.Kind)
		}
		m.Update(release(x, y))
	}

	x, y := locate(t, m, "non-whitespace", 0)
	m.Update(press(x, y))
	if m.drag.state != dragActive || m.drag.block.Kind != models.KindNonWhitespace {
		t.Errorf("press on the wrapped chip dragged %v", m.drag.block.Kind)
	}
	m.Update(release(x, y))
	if m.seq.Len() != 0 {
		t.Errorf("drag without hover added %d blocks", m.seq.Len())
	}
}

func TestKeyboardAdd(t *testing.T) {
	m, _ := newTestApp(t)

	// Palette is focused on "str start"
	_, cmd := m.Update(key("enter"))
	m.Update(cmd())
	_, cmd = m.Update(key("l"))
	if cmd != nil {
		m.Update(cmd())
	}
	_, cmd = m.Update(key(" "))
	m.Update(cmd())

	if got := currentPattern(m); got != `^$` {
		t.Errorf("pattern = %q, want %q", got, `^$`)
	}
}

func TestCopy(t *testing.T) {
	m, fc := newTestApp(t)

	if _, cmd := m.Update(key("ctrl+y")); cmd != nil {
		t.Errorf("copying the placeholder produced a command")
	}
	if m.status != "Nothing to copy" {
		t.Errorf("status = %q", m.status)
	}

	m.seq.Append(models.NewBlock(models.KindLiteral, "a.b"))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	x, y := locate(t, m, " copy ", m.geometry().tester.top)
	_, cmd := m.Update(press(x+1, y))
	if cmd == nil {
		t.Fatalf("press on copy button produced no command")
	}
	m.Update(cmd())

	if diff := cmp.Diff([]string{`(a\.b)`}, fc.texts); diff != "" {
		t.Errorf("clipboard mismatch (-want +got):\n%s", diff)
	}
	if m.tester.Flash() != tester.FlashCopied {
		t.Errorf("Flash() = %v, want copied", m.tester.Flash())
	}
}

func TestCopyFailure(t *testing.T) {
	m, fc := newTestApp(t)
	fc.err = errors.New("no display")
	m.seq.Append(models.NewBlock(models.KindDigit, ""))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	_, cmd := m.Update(key("y"))
	m.Update(cmd())

	if m.tester.Flash() != tester.FlashFailed {
		t.Errorf("Flash() = %v, want failed", m.tester.Flash())
	}
	if !strings.Contains(m.status, "no display") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFocusAndQuit(t *testing.T) {
	m, _ := newTestApp(t)

	m.Update(key("tab"))
	if m.focused != SequencePanel {
		t.Errorf("focused = %v after tab", m.focused)
	}
	m.Update(key("tab"))
	if m.focused != TesterPanel {
		t.Errorf("focused = %v after second tab", m.focused)
	}

	// q is typed into the sample while the tester has focus
	m.Update(key("q"))
	if m.quitting {
		t.Errorf("q quit while typing a sample")
	}
	if m.tester.Sample() != "q" {
		t.Errorf("Sample() = %q, want %q", m.tester.Sample(), "q")
	}

	m.Update(key("shift+tab"))
	m.Update(key("shift+tab"))
	if m.focused != PalettePanel {
		t.Errorf("focused = %v, want palette", m.focused)
	}

	_, cmd := m.Update(key("q"))
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Errorf("q did not quit from the palette")
	}
}

func TestExportModalFlow(t *testing.T) {
	m, _ := newTestApp(t)

	m.Update(key("ctrl+e"))
	if m.export.IsVisible() {
		t.Fatalf("export opened for an empty pattern")
	}

	m.seq.Append(models.NewBlock(models.KindDigit, ""))
	m.Update(messages.RefreshComponentsMsg{Reason: "test"})

	m.Update(key("ctrl+e"))
	if !m.export.IsVisible() {
		t.Fatalf("ctrl+e did not open the export modal")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Export as Go") {
		t.Errorf("modal not rendered")
	}

	// Mouse is ignored under the modal
	m.Update(mouse(tea.MouseActionPress, tea.MouseButtonRight, contentLeft, m.rowY()))
	if m.seq.Len() != 1 {
		t.Errorf("mouse reached the sequence under the modal")
	}

	_, cmd := m.Update(key("esc"))
	m.Update(cmd())
	if m.export.IsVisible() {
		t.Errorf("modal still visible after esc")
	}
	if m.status != "Export closed" {
		t.Errorf("status = %q", m.status)
	}
}
