package pattern

import (
	"regexp"
	"unicode/utf8"
)

// metaChars matches every character that needs a backslash inside a literal
var metaChars = regexp.MustCompile(`[.*+?^=!:${}()|\[\]/\\]`)

// Escape prefixes regex metacharacters in s with a backslash
func Escape(s string) string {
	if s == "" {
		return s
	}
	return metaChars.ReplaceAllString(s, `\${0}`)
}

// Group escapes s and wraps it in parentheses when it is longer than one
// character, so a trailing quantifier applies to the whole value.
func Group(s string) string {
	if utf8.RuneCountInString(s) > 1 {
		return "(" + Escape(s) + ")"
	}
	return Escape(s)
}
