// Package vm executes compiled programs as a Pike VM: a Thompson NFA
// simulation with leftmost-first submatch tracking.
//
// All live threads advance in lockstep over each input character, so a
// search costs O(n·m) in the worst case for an input of n bytes and a
// program of m instructions, regardless of the pattern. Thread queues are
// sparse sets sized at machine construction and the step loop performs no
// allocation; the capture slots handed back to the caller are the only
// heap-visible result of a run.
//
// A Machine is not safe for concurrent use. The compiled program is
// immutable, so concurrent searches are obtained by giving each goroutine
// its own Machine (the surface layer pools them).
package vm

import (
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/regexp/prefilter"
	"github.com/BurntSushi/regexp/program"
	"github.com/BurntSushi/regexp/syntax"
)

// MatchKind selects how much work a run performs and what it reports.
// Cheaper kinds must not pay for submatch tracking.
type MatchKind int

const (
	// Exists answers only whether any match occurs.
	Exists MatchKind = iota

	// Location reports the start and end of the whole match (group 0).
	Location

	// Submatches reports the positions of every capture group.
	Submatches
)

// Machine executes one program. It owns the transient thread queues and
// capture arrays of a run; nothing persists between runs.
type Machine struct {
	prog   *program.Program
	nslots int

	clist *threadQueue
	nlist *threadQueue

	// scratch is the working capture array threaded through epsilon
	// closure; matchCaps records the most recent match.
	scratch   []int
	matchCaps []int

	which   MatchKind
	ncopy   int
	text    []byte
	matched bool

	// One-character lookahead: the codepoints just before and at the
	// position threads are being added at. A value of -1 means none.
	prev rune
	cur  rune
}

// New creates a machine for the given program.
//
// Both thread queues are allocated here, sized by the instruction count
// and the program's capture arity, and reused across runs.
func New(prog *program.Program) *Machine {
	nslots := 2 * prog.NumCaptures()
	return &Machine{
		prog:      prog,
		nslots:    nslots,
		clist:     newThreadQueue(len(prog.Insts), nslots),
		nlist:     newThreadQueue(len(prog.Insts), nslots),
		scratch:   make([]int, nslots),
		matchCaps: make([]int, nslots),
	}
}

// Run searches text[start:end] and returns the capture slots of the
// leftmost-first match, or nil if there is no match.
//
// The shape of the result depends on the match kind: Exists yields two
// sentinel zero slots, Location the two slots of group 0, and Submatches
// two slots per group. Slot 2k is the start of group k and slot 2k+1 its
// end; both are byte offsets into text, and a group that did not
// participate has both slots set to -1.
//
// The prefilter, when non-nil, is consulted only while no threads are
// live and no match has been recorded, to skip ahead to the next position
// a match could begin at.
func (m *Machine) Run(which MatchKind, text []byte, start, end int, pf prefilter.Prefilter) []int {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return nil
	}

	m.which = which
	m.text = text
	m.matched = false
	switch which {
	case Exists:
		m.ncopy = 0
	case Location:
		m.ncopy = 2
	default:
		m.ncopy = m.nslots
	}
	m.clist.clear()
	m.nlist.clear()
	for i := range m.scratch {
		m.scratch[i] = -1
	}
	for i := range m.matchCaps {
		m.matchCaps[i] = -1
	}

	anchored := m.prog.IsAnchoredStart()
	ic := start
	m.prev, m.cur = -1, -1
	width := 0
	if ic > 0 {
		m.prev, _ = utf8.DecodeLastRune(text[:ic])
	}
	if ic < end {
		m.cur, width = utf8.DecodeRune(text[ic:end])
	}

	for {
		if m.clist.len() == 0 {
			if m.matched {
				break
			}
			// No live threads: skip ahead to the next position a
			// match could begin at.
			if pf != nil && !anchored {
				i := pf.Find(text[:end], ic)
				if i < 0 {
					break
				}
				if i > ic {
					ic = i
					m.prev, m.cur = -1, -1
					width = 0
					if ic > 0 {
						m.prev, _ = utf8.DecodeLastRune(text[:ic])
					}
					if ic < end {
						m.cur, width = utf8.DecodeRune(text[ic:end])
					}
				}
			}
		}
		if m.clist.len() == 0 || (!anchored && !m.matched) {
			m.add(m.clist, 0, m.scratch, ic)
		}

		// Advance the lookahead, then step every thread against the
		// character that was at ic. Threads that consume it are added
		// to the next queue at nextIc, where the advanced lookahead
		// is the right one for their empty-width assertions.
		c := m.cur
		nextIc := ic + width
		m.prev = m.cur
		m.cur = -1
		nextWidth := 0
		if nextIc < end {
			m.cur, nextWidth = utf8.DecodeRune(text[nextIc:end])
		}

		for i := 0; i < m.clist.len(); i++ {
			if m.step(m.clist.pcAt(i), m.clist.capsAt(i), c, nextIc) {
				if m.which == Exists {
					return []int{0, 0}
				}
				// Lower-priority threads in this generation must
				// not override the recorded match.
				break
			}
		}

		m.clist, m.nlist = m.nlist, m.clist
		m.nlist.clear()
		if width == 0 {
			break
		}
		ic = nextIc
		width = nextWidth
	}

	if !m.matched {
		return nil
	}
	switch m.which {
	case Exists:
		return []int{0, 0}
	case Location:
		return []int{m.matchCaps[0], m.matchCaps[1]}
	default:
		result := make([]int, m.nslots)
		copy(result, m.matchCaps)
		return result
	}
}

// step advances one thread over the codepoint c (or -1 at the end of the
// text). It reports whether the thread reached Match, which ends the
// generation.
func (m *Machine) step(pc uint32, caps []int, c rune, nextIc int) bool {
	inst := &m.prog.Insts[pc]
	switch inst.Kind {
	case program.InstMatch:
		copy(m.matchCaps[:m.ncopy], caps[:m.ncopy])
		m.matched = true
		return true

	case program.InstChar:
		if c >= 0 && matchChar(inst.Ch, inst.Flags, c) {
			m.add(m.nlist, pc+1, caps, nextIc)
		}

	case program.InstRanges:
		if c >= 0 && matchRanges(inst.Ranges, inst.Flags, c) {
			m.add(m.nlist, pc+1, caps, nextIc)
		}

	case program.InstAny:
		if c >= 0 && (inst.Flags.Has(syntax.FlagDotNL) || c != '\n') {
			m.add(m.nlist, pc+1, caps, nextIc)
		}
	}
	return false
}

// add performs the epsilon closure from pc into a queue. Every visited pc
// is recorded in the queue on entry, even for non-consuming instructions;
// this is what makes closure over cycles like (a*)* terminate.
//
// Non-consuming instructions propagate the working capture array by
// structural recursion. Consuming instructions and Match snapshot the
// tracked slots into the queue's own storage.
func (m *Machine) add(q *threadQueue, pc uint32, caps []int, ic int) {
	if q.contains(pc) {
		return
	}
	i := q.add(pc)

	inst := &m.prog.Insts[pc]
	switch inst.Kind {
	case program.InstEmptyBegin:
		if ic == 0 || (inst.Flags.Has(syntax.FlagMulti) && m.prev == '\n') {
			m.add(q, pc+1, caps, ic)
		}

	case program.InstEmptyEnd:
		if ic == len(m.text) || (inst.Flags.Has(syntax.FlagMulti) && m.cur == '\n') {
			m.add(q, pc+1, caps, ic)
		}

	case program.InstWordBoundary:
		boundary := isWordRune(m.prev) != isWordRune(m.cur)
		if boundary != inst.Flags.Has(syntax.FlagNegated) {
			m.add(q, pc+1, caps, ic)
		}

	case program.InstSave:
		if inst.Slot < m.ncopy {
			old := caps[inst.Slot]
			caps[inst.Slot] = ic
			m.add(q, pc+1, caps, ic)
			caps[inst.Slot] = old
		} else {
			m.add(q, pc+1, caps, ic)
		}

	case program.InstJump:
		m.add(q, inst.To, caps, ic)

	case program.InstSplit:
		// X before Y: the order encodes match preference.
		m.add(q, inst.X, caps, ic)
		m.add(q, inst.Y, caps, ic)

	default:
		copy(q.capsAt(i)[:m.ncopy], caps[:m.ncopy])
	}
}

// matchChar compares a codepoint against a literal instruction, using
// simple uppercase folding under FlagNoCase.
func matchChar(ch rune, flags syntax.Flags, c rune) bool {
	if c == ch {
		return true
	}
	return flags.Has(syntax.FlagNoCase) && unicode.ToUpper(c) == unicode.ToUpper(ch)
}

// matchRanges binary-searches a sorted range set. Under FlagNoCase the
// probe and both endpoints are compared through simple uppercase folding;
// FlagNegated inverts the outcome.
func matchRanges(ranges []syntax.ClassRange, flags syntax.Flags, c rune) bool {
	casei := flags.Has(syntax.FlagNoCase)
	probe := c
	if casei {
		probe = unicode.ToUpper(c)
	}
	found := false
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rlo, rhi := ranges[mid].Lo, ranges[mid].Hi
		if casei {
			rlo, rhi = unicode.ToUpper(rlo), unicode.ToUpper(rhi)
		}
		switch {
		case probe < rlo:
			hi = mid - 1
		case probe > rhi:
			lo = mid + 1
		default:
			found = true
			lo = hi + 1
		}
	}
	if flags.Has(syntax.FlagNegated) {
		return !found
	}
	return found
}

// isWordRune reports whether c is an ASCII word character. This is the
// same set the parser uses for \w, keeping \b and \w consistent.
func isWordRune(c rune) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}
