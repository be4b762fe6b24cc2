// Package commander finds the shell command under a cursor.
//
// The scanner understands enough shell grammar to recover word boundaries
// from unfinished input: quoting, ${...}, command substitution, (), {} and
// backtick groups, statement separators, reserved words and inline
// NAME=value assignments. It never fails: unterminated constructs run to the
// end of the line.
package commander

// DefaultMaxDepth bounds the nesting of quotes and groups followed by Locate.
const DefaultMaxDepth = 512

type Option func(*scanner)

// WithMaxDepth bounds the nesting depth followed by the scanner. Scopes nested
// deeper are consumed to the end of the line as if unterminated. Zero or a
// negative depth removes the bound.
func WithMaxDepth(depth int) Option {
	return func(s *scanner) {
		s.maxDepth = depth
	}
}

type scanner struct {
	line     string
	point    int
	depth    int
	maxDepth int
}

// Locate scans line and returns the command enclosing the cursor at byte
// offset point, which is clamped to [0, len(line)].
//
// example: Locate("echo 123 ; ls -l", 2) -> "echo 123 " with words [echo 123], index 1
func Locate(line string, point int, opts ...Option) Match {
	s := &scanner{
		line:     line,
		point:    min(max(point, 0), len(line)),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.statement(0, nil)
}

// Split returns the words of the first command of line as written.
func Split(line string) []string {
	return Locate(line, 0).Words()
}

func (s *scanner) enter() bool {
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		return false
	}
	s.depth++
	return true
}

func (s *scanner) leave() {
	s.depth--
}

// truncated is the result for a scope beyond the depth bound.
func (s *scanner) truncated(base int) Match {
	return Match{Start: base, End: len(s.line), line: s.line}
}

// statement scans from base up to terminator, or to the end of the line when
// terminator is nil.
func (s *scanner) statement(base int, terminator classifier) Match {
	if !s.enter() {
		return s.truncated(base)
	}
	defer s.leave()

	var (
		// the cursor as seen from this scope
		p = max(s.point, base)
		// the cursor precedes this scope: only its end matters
		before = s.point < base

		i      = base
		start  = -1
		ts     tokens
		index  = 0
		sindex = -1
	)

scan:
	for i < len(s.line) {
		rest := s.line[i:]
		if terminator != nil && terminator(rest) >= 0 {
			break
		}

		if p <= i && sindex < 0 {
			sindex = offsetInLast(ts, p, i)
		}

		if n := whitespace(rest); n > 0 {
			i += n
			ts = append(ts, Token{Start: i, End: i})
			continue
		}

		if p <= i && index == 0 {
			index = ts.count()
			if p == i && ts.last().empty() {
				// a chunk glued to the previous word stays part of it
				index++
			}
		}

		if start < 0 {
			start = i
		}

		if rest[0] == '"' {
			from := i
			i++
			m := s.quoted(i)
			if m.Found {
				return m.shift(index)
			}
			i = m.End
			ts = ts.extend(from, i)
			continue
		}

		if n := curlyVar(rest); n > 0 {
			ts = ts.extend(i, i+n)
			i += n
			continue
		}

		if g, ok := groupOf(rest[0]); ok {
			m, done := s.group(g, i, p, index)
			if done {
				return m
			}
			ts = ts.extend(i, m.End)
			i = m.End
			continue
		}

		if start == i {
			if n := keyword(rest); n > 0 {
				from := i
				i += n
				if i > p && !before {
					// the cursor is on the keyword itself
					i--
					ts = append(ts, Token{Start: from, End: i})
					break scan
				}
				start = -1
				ts = nil
				continue
			}

			if n := assignment(rest); n > 0 {
				i += n
				m := s.statement(i, whitespace)
				if (i >= p && !before) || (m.Found && m.Start == i) {
					// an inline assignment is a single word
					return Match{
						Start:  start,
						End:    m.End,
						Found:  true,
						Tokens: []Token{{Start: start, End: m.End}},
						Index:  1,
						SIndex: max(p-start, 0),
						line:   s.line,
					}
				}
				if m.Found {
					return m
				}
				i = m.End
				start = -1
				ts = nil
				continue
			}
		}

		if n := separator(rest); n > 0 {
			if i > p && !before {
				break scan
			}
			// a cursor on the separator belongs to the next statement
			start, index, sindex = -1, 0, -1
			i += n
			ts = nil
			continue
		}

		if n := word(rest); n > 0 {
			ts = ts.extend(i, i+n)
			i += n
			continue
		}

		// a stray closer: a one byte word keeps the scan moving
		ts = append(ts, Token{Start: i, End: i + 1})
		i++
	}

	if p <= i && sindex < 0 {
		sindex = offsetInLast(ts, p, i)
	}
	if start < 0 {
		start = i
	}
	words := ts.words()
	if p <= i && index == 0 {
		index = len(words)
	}
	return Match{
		Start:  start,
		End:    i,
		Found:  base < p && p <= i,
		Tokens: words,
		Index:  index,
		SIndex: max(sindex, 0),
		line:   s.line,
	}
}

// offsetInLast is the offset of the cursor p into the last accumulated word,
// which ends at i, or 0 when a separator closed it.
func offsetInLast(ts tokens, p, i int) int {
	last := ts.last()
	if last.empty() {
		return 0
	}
	return last.End - last.Start + p - i
}
