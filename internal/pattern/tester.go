package pattern

import (
	"regexp"
)

// Verdict is the live tester's visual state
type Verdict int

const (
	VerdictNeutral Verdict = iota // No sample entered
	VerdictMatch
	VerdictNoMatch
	VerdictInvalid // Pattern failed to compile
)

// String returns a human-readable representation of the verdict
func (v Verdict) String() string {
	switch v {
	case VerdictNeutral:
		return "neutral"
	case VerdictMatch:
		return "match"
	case VerdictNoMatch:
		return "no match"
	case VerdictInvalid:
		return "invalid pattern"
	default:
		return "unknown"
	}
}

// Evaluation holds the outcome of testing a pattern against a sample
type Evaluation struct {
	Pattern  string         // The regex pattern text
	Sample   string         // The sample it was tested against
	Compiled *regexp.Regexp // Compiled regex (nil if invalid)
	Verdict  Verdict        // Resulting state
	Match    []int          // Byte offsets of the leftmost match, if any
	Error    string         // Compile error message if invalid
}

// Test compiles pattern and evaluates it against sample. A pattern that
// does not compile yields VerdictInvalid regardless of the sample.
func Test(pattern, sample string) Evaluation {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return Evaluation{
			Pattern: pattern,
			Sample:  sample,
			Verdict: VerdictInvalid,
			Error:   err.Error(),
		}
	}

	ev := Evaluation{
		Pattern:  pattern,
		Sample:   sample,
		Compiled: compiled,
		Verdict:  VerdictNeutral,
	}
	if sample == "" {
		return ev
	}

	if loc := compiled.FindStringIndex(sample); loc != nil {
		ev.Verdict = VerdictMatch
		ev.Match = loc
	} else {
		ev.Verdict = VerdictNoMatch
	}
	return ev
}
