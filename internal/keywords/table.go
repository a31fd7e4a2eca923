// Package keywords holds the token tables that drive translation between C
// and K source text.
package keywords

import (
	"github.com/klang-lang/klang/internal/errors"
)

// Entry maps one source token to its counterpart in the target vocabulary.
type Entry struct {
	Source string
	Mapped string
}

// Table is an ordered list of entries. When two entries share a source
// token, the earlier one wins.
type Table []Entry

// Validate checks that no entry has an empty token on either side.
func (t Table) Validate() error {
	for i, e := range t {
		if e.Source == "" {
			return errors.EmptyToken(i, "source")
		}
		if e.Mapped == "" {
			return errors.EmptyToken(i, "mapped")
		}
	}
	return nil
}

// Invert returns a new table with source and mapped tokens swapped,
// preserving order.
func (t Table) Invert() Table {
	out := make(Table, len(t))
	for i, e := range t {
		out[i] = Entry{Source: e.Mapped, Mapped: e.Source}
	}
	return out
}

// Lookup returns the first entry whose source token equals tok.
func (t Table) Lookup(tok string) (Entry, bool) {
	for _, e := range t {
		if e.Source == tok {
			return e, true
		}
	}
	return Entry{}, false
}

// Duplicates lists source tokens that occur more than once. Only the
// first occurrence of each can ever match.
func (t Table) Duplicates() []string {
	seen := make(map[string]int, len(t))
	var dups []string
	for _, e := range t {
		seen[e.Source]++
		if seen[e.Source] == 2 {
			dups = append(dups, e.Source)
		}
	}
	return dups
}
