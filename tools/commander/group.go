package commander

// group scans the (), {} or backtick group opened at offset at. When done is
// set the returned match is the final answer, otherwise it spans the whole
// group, closer included, for the caller to take as part of a word.
func (s *scanner) group(g group, at, p, index int) (m Match, done bool) {
	i := at + 1
	m = s.statement(i, g.close)
	if m.Found {
		return m, true
	}
	if i == p {
		// the cursor sits right after the opener: show the group's own
		// command, possibly empty
		return Match{
			Start:  i,
			End:    m.End,
			Found:  true,
			Tokens: m.Tokens,
			Index:  min(index+1, len(m.Tokens)),
			line:   s.line,
		}, true
	}
	end := m.End
	if end < len(s.line) {
		end++
	}
	return Match{Start: at, End: end, line: s.line}, false
}
