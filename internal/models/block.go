package models

import (
	"fmt"
	"sync/atomic"
)

// Category groups block kinds for the palette and for rendering
type Category int

const (
	CategoryAnchor Category = iota
	CategoryBoundary
	CategoryLiteral
	CategoryChars
	CategoryRepeat
	CategoryUnknown
)

// Categories lists the known categories in palette order
var Categories = []Category{
	CategoryAnchor,
	CategoryBoundary,
	CategoryLiteral,
	CategoryChars,
	CategoryRepeat,
}

// String returns the category name as used in block tokens
func (c Category) String() string {
	switch c {
	case CategoryAnchor:
		return "anchor"
	case CategoryBoundary:
		return "boundary"
	case CategoryLiteral:
		return "literal"
	case CategoryChars:
		return "chars"
	case CategoryRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Heading returns the palette heading for the category
func (c Category) Heading() string {
	switch c {
	case CategoryAnchor:
		return "Anchors"
	case CategoryBoundary:
		return "Boundaries"
	case CategoryLiteral:
		return "Literals"
	case CategoryChars:
		return "Character Classes"
	case CategoryRepeat:
		return "Quantifiers"
	default:
		return ""
	}
}

// Kind identifies one regex construct. It is the (category, subtype) pair
// collapsed into a closed enum so renderers can switch on it exhaustively.
type Kind int

const (
	KindUnknown Kind = iota
	KindStrStart
	KindStrEnd
	KindWordBoundary
	KindLiteral
	KindAnyChar
	KindDigit
	KindNonDigit
	KindWhitespace
	KindNonWhitespace
	KindZeroPlus
	KindOnePlus
	KindZeroOrOne
)

// Kinds lists every known kind in catalog order
var Kinds = []Kind{
	KindStrStart,
	KindStrEnd,
	KindWordBoundary,
	KindLiteral,
	KindAnyChar,
	KindDigit,
	KindNonDigit,
	KindWhitespace,
	KindNonWhitespace,
	KindZeroPlus,
	KindOnePlus,
	KindZeroOrOne,
}

// Category returns the category the kind belongs to
func (k Kind) Category() Category {
	switch k {
	case KindStrStart, KindStrEnd:
		return CategoryAnchor
	case KindWordBoundary:
		return CategoryBoundary
	case KindLiteral:
		return CategoryLiteral
	case KindAnyChar, KindDigit, KindNonDigit, KindWhitespace, KindNonWhitespace:
		return CategoryChars
	case KindZeroPlus, KindOnePlus, KindZeroOrOne:
		return CategoryRepeat
	default:
		return CategoryUnknown
	}
}

// Subtype returns the subtype name within the category
func (k Kind) Subtype() string {
	switch k {
	case KindStrStart:
		return "str-start"
	case KindStrEnd:
		return "str-end"
	case KindWordBoundary:
		return "word"
	case KindLiteral:
		return "string"
	case KindAnyChar:
		return "any"
	case KindDigit:
		return "digit"
	case KindNonDigit:
		return "non-digit"
	case KindWhitespace:
		return "whitespace"
	case KindNonWhitespace:
		return "non-whitespace"
	case KindZeroPlus:
		return "zero-plus"
	case KindOnePlus:
		return "one-plus"
	case KindZeroOrOne:
		return "zero-or-one"
	default:
		return "unknown"
	}
}

// String returns the "category:subtype" token for the kind
func (k Kind) String() string {
	return fmt.Sprintf("%s:%s", k.Category(), k.Subtype())
}

// Label returns the static text shown on the block. Literal blocks have none.
func (k Kind) Label() string {
	switch k {
	case KindStrStart:
		return "str start"
	case KindStrEnd:
		return "str end"
	case KindWordBoundary:
		return "word bound"
	case KindAnyChar:
		return "any char"
	case KindDigit:
		return "digit"
	case KindNonDigit:
		return "non-digit"
	case KindWhitespace:
		return "whitespace"
	case KindNonWhitespace:
		return "non-whitespace"
	case KindZeroPlus:
		return "0+ times"
	case KindOnePlus:
		return "1+ times"
	case KindZeroOrOne:
		return "0-1 times"
	default:
		return ""
	}
}

// Editable reports whether blocks of this kind carry a user-editable value
func (k Kind) Editable() bool {
	c := k.Category()
	return c == CategoryLiteral || c == CategoryRepeat
}

// ParseKind resolves a "category:subtype" token. A bare subtype is accepted
// when it is unambiguous, which holds for every subtype in the catalog.
func ParseKind(token string) (Kind, bool) {
	for _, k := range Kinds {
		if token == k.String() || token == k.Subtype() {
			return k, true
		}
	}
	return KindUnknown, false
}

// Block is one unit of the pattern
type Block struct {
	ID    uint64 `json:"id"`              // Stable identity of this working copy
	Kind  Kind   `json:"kind"`            // What the block renders to
	Value string `json:"value,omitempty"` // Editable text (literal/repeat only)
}

// Label returns the static text of the block
func (b Block) Label() string {
	return b.Kind.Label()
}

// Editable reports whether the block carries a value
func (b Block) Editable() bool {
	return b.Kind.Editable()
}

var nextBlockID atomic.Uint64

// NewBlock creates a block with a fresh ID. Values passed to non-editable
// kinds are dropped.
func NewBlock(kind Kind, value string) Block {
	if !kind.Editable() {
		value = ""
	}
	return Block{
		ID:    nextBlockID.Add(1),
		Kind:  kind,
		Value: value,
	}
}
