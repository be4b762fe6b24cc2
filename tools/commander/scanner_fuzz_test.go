package commander

import (
	"strings"
	"testing"
)

// FuzzLocate checks the structural guarantees of Locate for arbitrary input
// and cursor positions.
func FuzzLocate(f *testing.F) {
	for _, s := range []string{
		"", " ", "\\", "\"", "'", "$(", "${", "`", "((((", "))))", "}{",
		"echo \"$(\"$(\"$(", "a=b=c d=$(e", "if then else fi", "a;;b&&c||d|&e",
		"echo \\\n\\\n", "π '漢字' \"🐱\"",
	} {
		f.Add(s, 0)
		f.Add(s, len(s)/2)
		f.Add(s, len(s))
	}
	for _, tc := range locateCases {
		f.Add(tc.Left+tc.Right, len(tc.Left))
	}

	f.Fuzz(func(t *testing.T, line string, point int) {
		m := Locate(line, point)
		if m.Start < 0 || m.Start > m.End || m.End > len(line) {
			t.Fatalf("span [%d, %d) out of range for %q", m.Start, m.End, line)
		}
		prev := m.Start
		for _, tok := range m.Tokens {
			if tok.empty() {
				t.Fatalf("empty token %+v for %q", tok, line)
			}
			if tok.Start < prev || tok.End > m.End {
				t.Fatalf("token %+v outside [%d, %d) or out of order for %q", tok, prev, m.End, line)
			}
			prev = tok.End
		}
		if m.Index < 0 || m.Index > len(m.Tokens) {
			t.Fatalf("index %d out of range for %d tokens, input %q at %d", m.Index, len(m.Tokens), line, point)
		}
		if m.SIndex < 0 {
			t.Fatalf("negative sindex %d for %q at %d", m.SIndex, line, point)
		}
		again := Locate(line, point)
		if again.Text() != m.Text() || strings.Join(again.Words(), "\x00") != strings.Join(m.Words(), "\x00") {
			t.Fatalf("Locate is not deterministic for %q at %d", line, point)
		}
	})
}
