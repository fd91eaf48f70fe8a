package argonaut

// ParserState is a byte cursor over a source buffer. It tracks position,
// line, and column for diagnostics, and offers the small set of primitive
// scans (whitespace, digits, literal matching) the recursive-descent
// grammar in parser.go is built from. Every operation is infallible except
// by precondition; position only ever moves forward.
type ParserState struct {
	src       []byte
	pos       int
	mark      int // -1 means "no mark set"
	line      int
	lineStart int
}

const noMark = -1

func newParserState(src []byte) ParserState {
	return ParserState{src: src, mark: noMark, line: 1, lineStart: 0}
}

// Eof reports whether the cursor has consumed the whole source.
func (s *ParserState) Eof() bool {
	return s.pos >= len(s.src)
}

// Peek returns the next byte without consuming it. ok is false at EOF.
func (s *ParserState) Peek() (b byte, ok bool) {
	if s.Eof() {
		return 0, false
	}
	return s.src[s.pos], true
}

// Next consumes and returns the next byte, updating line tracking.
func (s *ParserState) Next() (b byte, ok bool) {
	b, ok = s.Peek()
	if !ok {
		return 0, false
	}
	s.pos++
	if b == '\n' {
		s.line++
		s.lineStart = s.pos
	}
	return b, true
}

// View returns the unconsumed remainder of the source.
func (s *ParserState) View() []byte {
	return s.src[s.pos:]
}

// SetMark records the current position. Calling SetMark while a mark is
// already set is a programming error: marks are single-armed, matched by
// exactly one TakeMarked before the next SetMark.
func (s *ParserState) SetMark() {
	if s.mark != noMark {
		panic("argonaut: SetMark called with a mark already outstanding")
	}
	s.mark = s.pos
}

// TakeMarked returns the span from the outstanding mark to the current
// position and clears the mark. Calling it with no mark set is a
// programming error.
func (s *ParserState) TakeMarked() []byte {
	if s.mark == noMark {
		panic("argonaut: TakeMarked called with no mark set")
	}
	span := s.src[s.mark:s.pos]
	s.mark = noMark
	return span
}

// SkipSpace consumes ASCII space, tab, CR, and LF, updating line tracking.
func (s *ParserState) SkipSpace() {
	for {
		b, ok := s.Peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r':
			s.pos++
		case '\n':
			s.pos++
			s.line++
			s.lineStart = s.pos
		default:
			return
		}
	}
}

// SkipDigits consumes a run of ASCII digits and returns how many it found.
func (s *ParserState) SkipDigits() int {
	n := 0
	for {
		b, ok := s.Peek()
		if !ok || b < '0' || b > '9' {
			return n
		}
		s.pos++
		n++
	}
}

// CheckLiteral reports whether the remaining input starts with lit,
// consuming it on success and leaving the cursor untouched on failure.
func (s *ParserState) CheckLiteral(lit string) bool {
	if len(s.src)-s.pos < len(lit) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if s.src[s.pos+i] != lit[i] {
			return false
		}
	}
	s.pos += len(lit)
	return true
}

// Line returns the current 1-based line number.
func (s *ParserState) Line() int {
	return s.line
}

// Col returns the current 1-based column number.
func (s *ParserState) Col() int {
	return s.pos - s.lineStart + 1
}
