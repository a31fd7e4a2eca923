package translate

import "fmt"

// ScanState tells where the scan position lies. Keyword substitution only
// happens in StateNormal.
//
// Block and line comments are tracked independently: "//" inside a block
// comment, or "/*" inside a line comment, opens the other kind as well, and
// StateBlockLineComment holds until both have been closed.
type ScanState uint8

const (
	StateNormal ScanState = iota
	StateString
	StateChar
	StateBlockComment
	StateLineComment
	StateBlockLineComment
)

var stateNames = map[ScanState]string{
	StateNormal:           "NORMAL",
	StateString:           "STRING",
	StateChar:             "CHAR",
	StateBlockComment:     "BLOCK_COMMENT",
	StateLineComment:      "LINE_COMMENT",
	StateBlockLineComment: "BLOCK_LINE_COMMENT",
}

func (s ScanState) inBlock() bool {
	return s == StateBlockComment || s == StateBlockLineComment
}

func (s ScanState) inLine() bool {
	return s == StateLineComment || s == StateBlockLineComment
}

func (s ScanState) literal() bool {
	return s == StateString || s == StateChar
}

// comment returns the state for the given open comment parts.
func comment(block, line bool) ScanState {
	switch {
	case block && line:
		return StateBlockLineComment
	case block:
		return StateBlockComment
	case line:
		return StateLineComment
	}
	return StateNormal
}

func (s ScanState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// scanner carries one translation pass: the input, the read position, the
// current state and the output buffer.
type scanner struct {
	src   []byte
	pos   int
	state ScanState
	dir   Direction
	out   *Buffer
}

func (s *scanner) at(delim string) bool {
	return s.pos+len(delim) <= len(s.src) && string(s.src[s.pos:s.pos+len(delim)]) == delim
}

// escaped reports whether the current byte follows a backslash.
func (s *scanner) escaped() bool {
	return s.pos > 0 && s.src[s.pos-1] == '\\'
}

func (s *scanner) copy(n int) error {
	if err := s.out.Write(s.src[s.pos : s.pos+n]); err != nil {
		return err
	}
	s.pos += n
	return nil
}

// transition applies a literal or comment delimiter at the current position.
// It reports false when the byte is not a delimiter in the current state.
func (s *scanner) transition() (bool, error) {
	c := s.src[s.pos]

	switch {
	case c == '"' && (s.state == StateNormal || s.state == StateString):
		if !s.escaped() {
			s.state = toggle(s.state, StateString)
		}
		return true, s.copy(1)

	case c == '\'' && (s.state == StateNormal || s.state == StateChar):
		if s.dir == Reverse && s.state == StateNormal && s.identifierApostrophe() {
			return false, nil
		}
		if !s.escaped() {
			s.state = toggle(s.state, StateChar)
		}
		return true, s.copy(1)
	}

	if s.state.literal() {
		return false, nil
	}
	block, line := s.state.inBlock(), s.state.inLine()
	switch {
	case s.at("/*"):
		s.state = comment(true, line)
		return true, s.copy(2)
	case block && s.at("*/"):
		s.state = comment(false, line)
		return true, s.copy(2)
	case s.at("//"):
		s.state = comment(block, true)
		return true, s.copy(2)
	case line && c == '\n':
		s.state = comment(block, false)
		return true, s.copy(1)
	}
	return false, nil
}

func toggle(cur, lit ScanState) ScanState {
	if cur == lit {
		return StateNormal
	}
	return lit
}

// identifierApostrophe decides whether the apostrophe at the current
// position belongs to a K identifier rather than opening a char literal.
// The preceding byte must be a word char and the next byte must not be
// another apostrophe; then either the next byte is a word char (x'y) or
// the nearest preceding non-space byte is a word char (trailing, as in
// qaSpa').
func (s *scanner) identifierApostrophe() bool {
	p := s.pos
	if p == 0 || !isWordChar(s.src[p-1]) {
		return false
	}
	hasNext := p+1 < len(s.src)
	if hasNext && s.src[p+1] == '\'' {
		return false
	}
	if hasNext && isWordChar(s.src[p+1]) {
		return true
	}
	return isWordChar(s.src[lastNonSpace(s.src, p-1)])
}

// apostropheSubstitute returns the byte emitted for an identifier
// apostrophe that no keyword consumed. A trailing apostrophe at the very
// end of the input is kept as is.
func (s *scanner) apostropheSubstitute() byte {
	p := s.pos
	if p > 0 && isWordChar(s.src[p-1]) && p+1 < len(s.src) {
		return '_'
	}
	return '\''
}
