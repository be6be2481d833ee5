package pattern

import "github.com/cheerioskun/regexblocks/internal/models"

// Fragment renders a single block to its regex substring. Unknown kinds
// render to the empty string.
func Fragment(b models.Block) string {
	switch b.Kind {
	case models.KindLiteral:
		return Group(b.Value)
	case models.KindZeroPlus:
		return Group(b.Value) + "*"
	case models.KindOnePlus:
		return Group(b.Value) + "+"
	case models.KindZeroOrOne:
		return Group(b.Value) + "?"
	case models.KindStrStart:
		return "^"
	case models.KindStrEnd:
		return "$"
	case models.KindWordBoundary:
		return `\b`
	case models.KindAnyChar:
		return "."
	case models.KindDigit:
		return `\d`
	case models.KindNonDigit:
		return `\D`
	case models.KindWhitespace:
		return `\s`
	case models.KindNonWhitespace:
		return `\S`
	case models.KindUnknown:
		return ""
	}
	return ""
}
