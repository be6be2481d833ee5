package pattern

import (
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text", input: "hello world", want: "hello world"},
		{name: "dot", input: "a.b", want: `a\.b`},
		{name: "quantifiers", input: "*+?", want: `\*\+\?`},
		{name: "anchors", input: "^$", want: `\^\$`},
		{name: "braces and parens", input: "{}()", want: `\{\}\(\)`},
		{name: "brackets and pipe", input: "[a|b]", want: `\[a\|b\]`},
		{name: "slash and backslash", input: `/\`, want: `\/\\`},
		{name: "assertion chars", input: "=!:", want: `\=\!\:`},
		{name: "dash untouched", input: "a-z", want: "a-z"},
		{name: "unicode untouched", input: "héllo", want: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.input); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeSafeInputUnchanged(t *testing.T) {
	for _, s := range []string{"cat", "abc123", "with space", "日本語", "a-b_c"} {
		if got := Escape(s); got != s {
			t.Errorf("Escape(%q) = %q, want input unchanged", s, got)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "a"},
		{".", `\.`},
		{"é", "é"},
		{"ab", "(ab)"},
		{"a.", `(a\.)`},
		{"日本", "(日本)"},
	}

	for _, tt := range tests {
		if got := Group(tt.input); got != tt.want {
			t.Errorf("Group(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
