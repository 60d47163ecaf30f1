package commands_test

import (
	"testing"

	"github.com/Adirelle/devconsole/pkg/commands"
)

func sameTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"simple", "a b c", []string{"a", "b", "c"}},
		{"extra spaces", "  a   b  ", []string{"a", "b"}},
		{"quoted", `a "b c" d`, []string{"a", "b c", "d"}},
		{"empty", "", []string{}},
		{"blank", " \t ", []string{}},
		{"only quoted", `"only"`, []string{"only"}},
		{"quoted empty", `""`, []string{}},
		{"quoted blank", `"   "`, []string{}},
		{"inner spacing kept", `say "hello  world"`, []string{"say", "hello  world"}},
		{"other whitespace", "a\tb\nc", []string{"a", "b", "c"}},
		{"embedded quotes", `a"b c"d e`, []string{`a"b c"d`, "e"}},
		{"one pair stripped", `""""`, []string{`""`}},
		{"unmatched leading quote", `a " b`, []string{"a", `" b`}},
		{"unbalanced quotes", `echo "big world`, []string{"echo", `"big world`}},
		{"inner quote kept", `"a"b"`, []string{`a"b`}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			actual := commands.Split(tt.line)
			if !sameTokens(actual, tt.expected) {
				t.Errorf("Split(%q) = %q, expected %q", tt.line, actual, tt.expected)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()
	tokens := []string{"spawn", "big crate", "3"}

	line := commands.Join(tokens)
	if line != `spawn "big crate" 3` {
		t.Errorf("unexpected line: %q", line)
	}
	if back := commands.Split(line); !sameTokens(back, tokens) {
		t.Errorf("Split(Join(%q)) = %q", tokens, back)
	}
}

func TestJoinWithEmbeddedQuotes(t *testing.T) {
	t.Parallel()
	line := commands.Join([]string{"sc", `a"b c"d`})

	if line != `sc "a"b c"d"` {
		t.Errorf("unexpected line: %q", line)
	}
	if back := commands.Split(line); !sameTokens(back, []string{"sc", `"a"b`, `c"d"`}) {
		t.Errorf("unexpected split: %q", back)
	}
}
