package commander

// quoted scans the body of a double quoted literal starting after the opening
// quote. Only a command substitution inside it can hold the answer, so the
// result is never Found unless it comes from one.
func (s *scanner) quoted(base int) Match {
	if !s.enter() {
		return s.truncated(base)
	}
	defer s.leave()

	i := base
	for i < len(s.line) {
		n := quotedChunk(s.line[i:])
		if n <= 0 {
			i++
			continue
		}
		switch s.line[i : i+n] {
		case "$(":
			i += n
			m := s.statement(i, closeParen)
			if m.Found {
				return m
			}
			i = m.End
		case `"`:
			return Match{Start: base, End: i + n, line: s.line}
		default:
			i += n
		}
	}
	return Match{Start: base, End: i, line: s.line}
}
