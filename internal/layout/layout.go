// Package layout holds the geometry rules of the block row: how wide an
// editable block's input box is, when the row overflows, and where a
// dragged block lands.
package layout

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// InputWidth returns the width in terminal cells of an input box sized to
// its content. An empty value still takes one cell.
func InputWidth(value string) int {
	w := runewidth.StringWidth(value)
	if w < 1 {
		return 1
	}
	return w
}

// Overflows reports whether content wider than the visible area needs a
// scrollbar
func Overflows(contentWidth, visibleWidth int) bool {
	return contentWidth > visibleWidth
}

// Span is the horizontal extent of one rendered block
type Span struct {
	ID    uint64 // Block the span belongs to
	Start int    // First cell, in row content coordinates
	Width int    // Width in cells
}

// Mid returns the horizontal midpoint of the span
func (s Span) Mid() float64 {
	return float64(s.Start) + float64(s.Width)/2
}

// Contains reports whether cell x falls inside the span
func (s Span) Contains(x int) bool {
	return x >= s.Start && x < s.Start+s.Width
}

// InsertionIndex returns where a dragged block should go for a pointer at
// x. Among the spans that are not the dragged block, it finds the nearest
// one whose midpoint lies right of the pointer; the result is that span's
// index counted without the dragged block. When no span qualifies the
// block goes to the end.
func InsertionIndex(spans []Span, dragging uint64, x int) int {
	best := -1
	closest := math.Inf(-1)
	n := 0

	for _, s := range spans {
		if s.ID == dragging {
			continue
		}
		offset := float64(x) - s.Mid()
		if offset < 0 && offset > closest {
			closest = offset
			best = n
		}
		n++
	}

	if best < 0 {
		return n
	}
	return best
}

// HitTest returns the index of the span containing cell x, or -1
func HitTest(spans []Span, x int) int {
	for i, s := range spans {
		if s.Contains(x) {
			return i
		}
	}
	return -1
}

// ScrollOffset returns the horizontal offset that keeps the span at focus
// visible within visibleWidth, starting from the current offset
func ScrollOffset(spans []Span, focus, current, visibleWidth, contentWidth int) int {
	if !Overflows(contentWidth, visibleWidth) {
		return 0
	}

	offset := current
	if focus >= 0 && focus < len(spans) {
		s := spans[focus]
		if s.Start < offset {
			offset = s.Start
		}
		if end := s.Start + s.Width; end > offset+visibleWidth {
			offset = end - visibleWidth
		}
	}

	maxOffset := contentWidth - visibleWidth
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Thumb returns the start and length, in cells of a track trackWidth wide,
// of a scrollbar thumb for the given scroll position
func Thumb(offset, visibleWidth, contentWidth, trackWidth int) (start, length int) {
	if contentWidth <= 0 || trackWidth <= 0 {
		return 0, 0
	}
	if !Overflows(contentWidth, visibleWidth) {
		return 0, trackWidth
	}

	length = trackWidth * visibleWidth / contentWidth
	if length < 1 {
		length = 1
	}
	start = trackWidth * offset / contentWidth
	if start+length > trackWidth {
		start = trackWidth - length
	}
	return start, length
}
