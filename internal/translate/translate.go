// Package translate implements the one-pass keyword substitution that turns
// C source into K source and back. The pass tracks string literals, char
// literals and comments so their contents are copied untouched, and
// replaces whole keyword tokens everywhere else.
package translate

import (
	"fmt"

	"github.com/klang-lang/klang/internal/keywords"
)

// Direction selects the vocabulary being translated from.
type Direction uint8

const (
	// Forward translates C to K.
	Forward Direction = iota
	// Reverse translates K to C. Apostrophes inside K identifiers are
	// told apart from char literal delimiters and, when no keyword
	// consumes them, rewritten to underscores.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// growthFactor is the initial output capacity as a multiple of the input
// length. K tokens are mostly longer than their C counterparts.
func (d Direction) growthFactor() int {
	if d == Forward {
		return 3
	}
	return 2
}

// Options tunes a Translator.
type Options struct {
	// MaxOutput caps the output size in bytes; 0 means unlimited.
	MaxOutput int
}

// Translator applies one keyword table in one direction. It is immutable
// and safe for concurrent use.
type Translator struct {
	dir     Direction
	matcher *Matcher
	opts    Options
}

// New validates table and builds a Translator for it.
func New(table keywords.Table, dir Direction, opts Options) (*Translator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxOutput < 0 {
		return nil, fmt.Errorf("negative output limit %d", opts.MaxOutput)
	}
	return &Translator{dir: dir, matcher: NewMatcher(table), opts: opts}, nil
}

// NewDefault builds a Translator from the embedded dictionary.
func NewDefault(dir Direction) *Translator {
	d := keywords.Default()
	table := d.Forward()
	if dir == Reverse {
		table = d.Reverse()
	}
	t, err := New(table, dir, Options{})
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Translator) Direction() Direction { return t.dir }

// Translate returns src with every keyword outside literals and comments
// replaced. The only error is an allocation failure; unterminated literals
// and comments are not errors.
func (t *Translator) Translate(src []byte) ([]byte, error) {
	out, _, err := t.TranslateWithState(src)
	return out, err
}

// TranslateString is Translate for strings.
func (t *Translator) TranslateString(src string) (string, error) {
	out, err := t.Translate([]byte(src))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// TranslateWithState is Translate that also reports the scan state at end
// of input. See Unterminated; a line comment left open only by a missing
// final newline is harmless.
func (t *Translator) TranslateWithState(src []byte) ([]byte, ScanState, error) {
	s := &scanner{
		src: src,
		dir: t.dir,
		out: NewBuffer(len(src)*t.dir.growthFactor(), t.opts.MaxOutput),
	}
	if err := t.run(s); err != nil {
		return nil, s.state, err
	}
	return s.out.Bytes(), s.state, nil
}

func (t *Translator) run(s *scanner) error {
	for s.pos < len(s.src) {
		handled, err := s.transition()
		if err != nil {
			return err
		}
		if handled {
			continue
		}

		if s.state != StateNormal {
			if err := s.copy(1); err != nil {
				return err
			}
			continue
		}

		if e, ok := t.matcher.Match(s.src, s.pos); ok {
			if err := s.out.WriteString(e.Mapped); err != nil {
				return err
			}
			s.pos += len(e.Source)
			continue
		}

		if t.dir == Reverse && s.src[s.pos] == '\'' {
			if err := s.out.WriteByte(s.apostropheSubstitute()); err != nil {
				return err
			}
			s.pos++
			continue
		}

		if err := s.copy(1); err != nil {
			return err
		}
	}
	return nil
}

// Unterminated reports whether a pass that ended in state left a literal or
// block comment open.
func Unterminated(state ScanState) bool {
	return state.literal() || state.inBlock()
}
