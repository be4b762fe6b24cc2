package commander

// Token is a half-open byte range [Start, End) of the scanned line holding one
// shell word as written, quotes and escapes unresolved.
type Token struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Text returns the token's source text.
func (t Token) Text(line string) string {
	return line[t.Start:t.End]
}

func (t Token) empty() bool {
	return t.Start == t.End
}

// Match is the result of a scan.
type Match struct {
	// Start is where the first token of the command begins.
	Start int
	// End is where scanning stopped.
	End int
	// Found reports whether the cursor lies inside the scanned scope, which
	// makes this the final answer rather than something to fold into the
	// enclosing scope.
	Found bool
	// Tokens are the words of the command, none of them empty.
	Tokens []Token
	// Index is the 1-based position in Tokens of the word under the cursor, or
	// 0 when the cursor is not on any word yet.
	Index int
	// SIndex is the cursor offset relative to the start of that word.
	SIndex int

	line string
}

// Text returns the command span [Start, End).
func (m Match) Text() string {
	return m.line[m.Start:m.End]
}

// Words materializes the tokens.
func (m Match) Words() []string {
	words := make([]string, 0, len(m.Tokens))
	for _, t := range m.Tokens {
		words = append(words, t.Text(m.line))
	}
	return words
}

// Word returns the word under the cursor, or "" when Index is 0.
func (m Match) Word() string {
	if m.Index < 1 || m.Index > len(m.Tokens) {
		return ""
	}
	return m.Tokens[m.Index-1].Text(m.line)
}

// shift folds a nested result into the enclosing scope, which had already
// accumulated index words. Offsets are absolute so only the index moves.
func (m Match) shift(index int) Match {
	m.Index += index
	return m
}

// tokens accumulates the words of a statement. Zero-length entries separate
// words and are dropped by words.
type tokens []Token

func (ts tokens) last() Token {
	if len(ts) == 0 {
		return Token{}
	}
	return ts[len(ts)-1]
}

// extend appends [start, end), merging it into the previous word when that
// word is not closed by a separator.
func (ts tokens) extend(start, end int) tokens {
	if last := ts.last(); !last.empty() {
		start = last.Start
		ts = ts[:len(ts)-1]
	}
	return append(ts, Token{Start: start, End: end})
}

func (ts tokens) count() int {
	n := 0
	for _, t := range ts {
		if !t.empty() {
			n++
		}
	}
	return n
}

func (ts tokens) words() []Token {
	out := make([]Token, 0, len(ts))
	for _, t := range ts {
		if !t.empty() {
			out = append(out, t)
		}
	}
	return out
}
