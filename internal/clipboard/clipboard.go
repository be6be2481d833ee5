// Package clipboard copies the rendered pattern out of the terminal.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when no clipboard mechanism accepted the text
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer copies text to a clipboard
type Writer interface {
	WriteText(text string) error
}

// Method names the mechanism that handled a copy
type Method int

const (
	MethodNone Method = iota
	MethodSystem
	MethodOSC52
)

// String returns a human-readable representation of the method
func (m Method) String() string {
	switch m {
	case MethodSystem:
		return "system clipboard"
	case MethodOSC52:
		return "terminal (OSC 52)"
	default:
		return "none"
	}
}

// System writes to the OS clipboard and, when enabled, falls back to an
// OSC 52 escape sequence written to the terminal
type System struct {
	terminal io.Writer // Where OSC 52 sequences go; nil disables the fallback
	write    func(string) error
	last     Method
}

// NewSystem creates a clipboard writer. Pass the terminal output to enable
// the OSC 52 fallback, or nil to disable it.
func NewSystem(terminal io.Writer) *System {
	return &System{
		terminal: terminal,
		write:    sysclip.WriteAll,
	}
}

// WriteText copies text, trying the system clipboard first
func (s *System) WriteText(text string) error {
	s.last = MethodNone

	sysErr := ErrUnavailable
	if !sysclip.Unsupported {
		if sysErr = s.write(text); sysErr == nil {
			s.last = MethodSystem
			return nil
		}
	}

	if s.terminal == nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, sysErr)
	}

	if _, err := osc52.New(text).WriteTo(s.terminal); err != nil {
		return fmt.Errorf("%w: system: %v, osc52: %v", ErrUnavailable, sysErr, err)
	}
	s.last = MethodOSC52
	return nil
}

// LastMethod reports which mechanism handled the most recent copy
func (s *System) LastMethod() Method {
	return s.last
}
