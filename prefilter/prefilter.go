// Package prefilter provides fast candidate search over literals
// extracted from a compiled pattern.
//
// A prefilter is consulted by the Pike VM only when its thread queue has
// drained and no match has been recorded. At that point every possible
// match still ahead must begin with one of the extracted literals, so the
// VM can skip directly to the next literal occurrence instead of seeding
// a start thread at every position. A prefilter can therefore never
// change observable results; it only avoids dead input.
//
// Two strategies are provided:
//   - Memmem: single extracted prefix, byte-wise substring search
//   - AhoCorasick: alternation branch prefixes, multi-literal automaton
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// Prefilter finds candidate match start positions in a haystack.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if no candidate exists.
	Find(haystack []byte, start int) int
}

// Memmem searches for a single literal needle.
//
// The needle is the literal prefix extracted from the program, so every
// match begins with it exactly; no verification subtlety applies and a
// plain substring search suffices.
type Memmem struct {
	needle []byte
}

// NewMemmem creates a substring prefilter. Returns nil for an empty
// needle, which would match everywhere and filter nothing.
func NewMemmem(needle []byte) *Memmem {
	if len(needle) == 0 {
		return nil
	}
	return &Memmem{needle: needle}
}

// Find implements Prefilter.
func (m *Memmem) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[start:], m.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

// Needle returns the literal this prefilter searches for.
func (m *Memmem) Needle() []byte {
	return m.needle
}

// AhoCorasick searches for any of several literals using an Aho-Corasick
// automaton. It serves patterns that are alternations of literal-prefixed
// branches, where no single prefix exists.
type AhoCorasick struct {
	auto *ahocorasick.Automaton
}

// NewAhoCorasick builds a multi-literal prefilter. Returns nil when the
// automaton cannot be built or when fewer than two literals are given
// (a single literal is better served by Memmem).
func NewAhoCorasick(literals [][]byte) *AhoCorasick {
	if len(literals) < 2 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		if len(lit) == 0 {
			return nil
		}
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &AhoCorasick{auto: auto}
}

// Find implements Prefilter.
func (a *AhoCorasick) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := a.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}
