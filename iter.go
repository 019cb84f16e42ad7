package regexp

import (
	"unicode/utf8"

	"github.com/BurntSushi/regexp/vm"
)

// FindMatches iterates over all successive non-overlapping matches in a
// haystack.
//
// An empty match immediately following a previous match is skipped by
// advancing one codepoint (one byte for ASCII or invalid UTF-8), so
// iteration always terminates, never yields the same position twice in a
// row, and keeps offsets on codepoint boundaries.
type FindMatches struct {
	re        *Regexp
	haystack  []byte
	lastEnd   int
	lastMatch int
}

// Next returns the next match, or nil when iteration is done.
func (it *FindMatches) Next() *Match {
	for it.lastEnd <= len(it.haystack) {
		caps := it.re.run(vm.Location, it.haystack, it.lastEnd)
		if caps == nil {
			return nil
		}
		s, e := caps[0], caps[1]
		if s == e && it.lastEnd == it.lastMatch {
			// An empty match right after a match would never let
			// the iterator advance.
			_, w := utf8.DecodeRune(it.haystack[it.lastEnd:])
			it.lastEnd += max(w, 1)
			continue
		}
		it.lastEnd = e
		it.lastMatch = e
		return newMatch(s, e, it.haystack)
	}
	return nil
}

// FindCaptures iterates over the capture groups of all successive
// non-overlapping matches in a haystack. Operationally the same as
// FindMatches, except it yields capture records.
type FindCaptures struct {
	re        *Regexp
	haystack  []byte
	lastEnd   int
	lastMatch int
}

// Next returns the captures of the next match, or nil when iteration is
// done.
func (it *FindCaptures) Next() *Captures {
	for it.lastEnd <= len(it.haystack) {
		caps := it.re.run(vm.Submatches, it.haystack, it.lastEnd)
		if caps == nil {
			return nil
		}
		s, e := caps[0], caps[1]
		if s == e && it.lastEnd == it.lastMatch {
			_, w := utf8.DecodeRune(it.haystack[it.lastEnd:])
			it.lastEnd += max(w, 1)
			continue
		}
		it.lastEnd = e
		it.lastMatch = e
		return &Captures{haystack: it.haystack, locs: caps, names: it.re.names}
	}
	return nil
}

// Splits iterates over the substrings between successive matches.
type Splits struct {
	finder *FindMatches
	text   string
	last   int
}

// Next returns the next piece. The second result is false when iteration
// is done.
func (s *Splits) Next() (string, bool) {
	m := s.finder.Next()
	if m == nil {
		if s.last >= len(s.text) {
			return "", false
		}
		piece := s.text[s.last:]
		s.last = len(s.text)
		return piece, true
	}
	piece := s.text[s.last:m.Start()]
	s.last = m.End()
	return piece, true
}

// SplitsN iterates over at most a fixed number of split pieces. The last
// piece is whatever remains unsplit.
type SplitsN struct {
	splits *Splits
	cur    int
	limit  int
}

// Next returns the next piece. The second result is false when iteration
// is done.
func (s *SplitsN) Next() (string, bool) {
	if s.cur >= s.limit {
		return "", false
	}
	s.cur++
	if s.cur >= s.limit {
		piece := s.splits.text[s.splits.last:]
		s.splits.last = len(s.splits.text)
		return piece, true
	}
	return s.splits.Next()
}
