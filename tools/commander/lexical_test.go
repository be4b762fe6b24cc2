package commander

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiers(t *testing.T) {
	for _, tc := range []struct {
		name string
		c    classifier
		in   string
		want int
	}{
		{"whitespace run", whitespace, " \t x", 3},
		{"escaped newline is blank", whitespace, "\\\n  x", 4},
		{"bare newline is not blank", whitespace, "\nx", -1},
		{"keyword needs a blank", keyword, "if x", 3},
		{"keyword prefix of a word", keyword, "iffy x", -1},
		{"keyword before a vertical tab", keyword, "if\vecho", 3},
		{"keyword before a form feed", keyword, "then\fx", 5},
		{"vertical tab ends a word", word, "ab\vc", 2},
		{"vertical tab is blank", whitespace, "\v\fx", 2},
		{"double bracket", keyword, "[[ -f x ]]", 3},
		{"semicolon", separator, "; ls", 1},
		{"and", separator, "&& ls", 2},
		{"or", separator, "|| ls", 2},
		{"pipe stderr", separator, "|& ls", 2},
		{"pipe", separator, "| ls", 1},
		{"single ampersand", separator, "& ls", -1},
		{"assignment", assignment, "KEY=VALUE", 4},
		{"not an assignment", assignment, "=VALUE", -1},
		{"curly variable", curlyVar, "${HOME}/x", 7},
		{"unterminated curly variable", curlyVar, "${HOME", 6},
		{"plain word", word, "abc def", 3},
		{"escaped blank", word, "a\\ b c", 4},
		{"stops at group", word, "ab(c", 2},
		{"single quotes", word, "'a b' c", 5},
		{"ansi c quotes", word, "$'a\\'b' c", 7},
		{"closer", closeParen, ")", 1},
		{"not a closer", closeBrace, ")", -1},
		{"quoted text", quotedChunk, `ab\"c$x"`, 7},
		{"quoted closer", quotedChunk, `" x`, 1},
		{"quoted substitution", quotedChunk, "$(cat)", 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c(tc.in))
		})
	}
}

func TestGroupOf(t *testing.T) {
	g, ok := groupOf('`')
	assert.True(t, ok)
	assert.Equal(t, 1, g.close("`"))

	_, ok = groupOf('[')
	assert.False(t, ok)
}
