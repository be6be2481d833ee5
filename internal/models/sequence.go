package models

import (
	"time"
)

// Sequence is the ordered list of blocks the user assembled. Order decides
// concatenation order. The UI renders from it and never holds its own copy.
type Sequence struct {
	blocks      []Block
	Revision    uint64    `json:"revision"`     // Bumped on every mutation
	LastUpdated time.Time `json:"last_updated"` // When last modified
}

// NewSequence creates a sequence holding the given blocks in order
func NewSequence(blocks ...Block) *Sequence {
	s := &Sequence{
		blocks:      make([]Block, 0, len(blocks)),
		LastUpdated: time.Now(),
	}
	s.blocks = append(s.blocks, blocks...)
	return s
}

// Blocks returns a copy of the blocks in order
func (s *Sequence) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Len returns the number of blocks
func (s *Sequence) Len() int {
	return len(s.blocks)
}

// At returns the block at index i
func (s *Sequence) At(i int) (Block, bool) {
	if i < 0 || i >= len(s.blocks) {
		return Block{}, false
	}
	return s.blocks[i], true
}

// IndexOf returns the position of the block with the given ID, or -1
func (s *Sequence) IndexOf(id uint64) int {
	for i, b := range s.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a block with the given ID is in the sequence
func (s *Sequence) Contains(id uint64) bool {
	return s.IndexOf(id) >= 0
}

// Append adds a block at the end
func (s *Sequence) Append(b Block) {
	s.Insert(len(s.blocks), b)
}

// Insert places a block before index i. Out of range indexes clamp to the
// nearest end.
func (s *Sequence) Insert(i int, b Block) {
	i = clamp(i, 0, len(s.blocks))
	s.blocks = append(s.blocks, Block{})
	copy(s.blocks[i+1:], s.blocks[i:])
	s.blocks[i] = b
	s.touch()
}

// Move relocates the block with the given ID so it ends up at index i of
// the resulting sequence. Returns false when the block is not present.
func (s *Sequence) Move(id uint64, i int) bool {
	from := s.IndexOf(id)
	if from < 0 {
		return false
	}
	b := s.blocks[from]
	s.blocks = append(s.blocks[:from], s.blocks[from+1:]...)
	i = clamp(i, 0, len(s.blocks))
	s.blocks = append(s.blocks, Block{})
	copy(s.blocks[i+1:], s.blocks[i:])
	s.blocks[i] = b
	if from != i {
		s.touch()
	}
	return true
}

// Remove deletes the block with the given ID
func (s *Sequence) Remove(id uint64) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	s.touch()
	return true
}

// SetValue updates the value of an editable block
func (s *Sequence) SetValue(id uint64, value string) bool {
	i := s.IndexOf(id)
	if i < 0 || !s.blocks[i].Editable() {
		return false
	}
	if s.blocks[i].Value != value {
		s.blocks[i].Value = value
		s.touch()
	}
	return true
}

// Clear removes every block
func (s *Sequence) Clear() {
	s.blocks = s.blocks[:0]
	s.touch()
}

func (s *Sequence) touch() {
	s.Revision++
	s.LastUpdated = time.Now()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
