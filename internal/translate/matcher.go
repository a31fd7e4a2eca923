package translate

import "github.com/klang-lang/klang/internal/keywords"

// Matcher finds the keyword entry that applies at a scan position. Entries
// are bucketed by the first byte of their source token; each bucket keeps
// table order, so the first qualifying entry in the table still wins.
type Matcher struct {
	table   keywords.Table
	buckets [256][]int
}

// NewMatcher indexes table. The table must not be modified afterwards.
func NewMatcher(table keywords.Table) *Matcher {
	m := &Matcher{table: table}
	for i, e := range table {
		if e.Source == "" {
			continue
		}
		first := e.Source[0]
		m.buckets[first] = append(m.buckets[first], i)
	}
	return m
}

// Match returns the first entry whose source token occurs at text[pos:] as
// a whole token.
func (m *Matcher) Match(text []byte, pos int) (keywords.Entry, bool) {
	for _, i := range m.buckets[text[pos]] {
		e := m.table[i]
		end := pos + len(e.Source)
		if end > len(text) {
			continue
		}
		if string(text[pos:end]) == e.Source && IsWordBoundary(text, pos, len(e.Source)) {
			return e, true
		}
	}
	return keywords.Entry{}, false
}
