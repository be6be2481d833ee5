package pattern

import (
	"strings"

	"github.com/cheerioskun/regexblocks/internal/models"
)

// Placeholder is displayed instead of an empty pattern
const Placeholder = "Regex goes here"

// Result is the outcome of rendering a sequence
type Result struct {
	Pattern   string   // Concatenated fragments, possibly empty
	Fragments []string // Per-block fragments in sequence order
	Empty     bool     // No block contributed anything
}

// Display returns the text shown in the pattern display
func (r Result) Display() string {
	if r.Empty {
		return Placeholder
	}
	return r.Pattern
}

// Build renders blocks in order and concatenates their fragments
func Build(blocks []models.Block) Result {
	var sb strings.Builder
	fragments := make([]string, 0, len(blocks))

	for _, b := range blocks {
		f := Fragment(b)
		fragments = append(fragments, f)
		sb.WriteString(f)
	}

	p := sb.String()
	return Result{
		Pattern:   p,
		Fragments: fragments,
		Empty:     p == "",
	}
}

// BuildSequence renders the current contents of seq
func BuildSequence(seq *models.Sequence) Result {
	if seq == nil {
		return Build(nil)
	}
	return Build(seq.Blocks())
}
