// Package program lowers a parsed pattern into a flat instruction program
// for the Pike VM.
//
// A program is a finite sequence of instructions. Instruction 0 is always
// Save(0) and the final two are Save(1) followed by Match, so the position
// of the whole match is captured uniformly with every other group. Jump
// and split targets are back-patched during compilation and always refer
// to valid program counters.
//
// Programs are immutable after compilation and safe to share across
// goroutines.
package program

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/regexp/syntax"
)

// InstKind identifies the type of an instruction and determines which of
// its fields are valid.
type InstKind uint8

const (
	// InstMatch ends a successful thread.
	InstMatch InstKind = iota

	// InstChar matches a single codepoint.
	InstChar

	// InstRanges matches a codepoint against a sorted range set.
	InstRanges

	// InstAny matches any codepoint, excluding newline unless
	// FlagDotNL is set.
	InstAny

	// InstEmptyBegin matches the beginning of the text without
	// consuming input. With FlagMulti it also matches after a newline.
	InstEmptyBegin

	// InstEmptyEnd matches the end of the text without consuming
	// input. With FlagMulti it also matches before a newline.
	InstEmptyEnd

	// InstWordBoundary matches at an ASCII word boundary without
	// consuming input. With FlagNegated it matches everywhere but.
	InstWordBoundary

	// InstSave stores the current input position into a capture slot.
	InstSave

	// InstJump transfers control to another instruction.
	InstJump

	// InstSplit transfers control to two instructions, preferring the
	// first. Split ordering is the sole mechanism behind leftmost-first
	// matching and the greedy/ungreedy distinction.
	InstSplit
)

// String returns a human-readable representation of the kind.
func (k InstKind) String() string {
	switch k {
	case InstMatch:
		return "Match"
	case InstChar:
		return "Char"
	case InstRanges:
		return "Ranges"
	case InstAny:
		return "Any"
	case InstEmptyBegin:
		return "EmptyBegin"
	case InstEmptyEnd:
		return "EmptyEnd"
	case InstWordBoundary:
		return "WordBoundary"
	case InstSave:
		return "Save"
	case InstJump:
		return "Jump"
	case InstSplit:
		return "Split"
	default:
		return fmt.Sprintf("InstKind(%d)", k)
	}
}

// Inst is a single program instruction. Its kind determines which fields
// are valid.
type Inst struct {
	Kind InstKind

	// Flags carries the modifier bits relevant to the kind: FlagNoCase
	// for Char and Ranges, FlagDotNL for Any, FlagMulti for the empty
	// anchors and FlagNegated for Ranges and WordBoundary.
	Flags syntax.Flags

	// Ch is the codepoint matched by Char.
	Ch rune

	// Ranges is the sorted, merged range set matched by Ranges.
	Ranges []syntax.ClassRange

	// Slot is the capture slot written by Save.
	Slot int

	// To is the target of Jump.
	To uint32

	// X and Y are the targets of Split, in preference order.
	X, Y uint32
}

// String returns a compact debugging form of the instruction.
func (i *Inst) String() string {
	switch i.Kind {
	case InstChar:
		return fmt.Sprintf("Char(%q, %d)", i.Ch, i.Flags)
	case InstRanges:
		var b strings.Builder
		b.WriteString("Ranges[")
		for j, r := range i.Ranges {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%q-%q", r.Lo, r.Hi)
		}
		fmt.Fprintf(&b, "](%d)", i.Flags)
		return b.String()
	case InstAny:
		return fmt.Sprintf("Any(%d)", i.Flags)
	case InstEmptyBegin:
		return fmt.Sprintf("EmptyBegin(%d)", i.Flags)
	case InstEmptyEnd:
		return fmt.Sprintf("EmptyEnd(%d)", i.Flags)
	case InstWordBoundary:
		return fmt.Sprintf("WordBoundary(%d)", i.Flags)
	case InstSave:
		return fmt.Sprintf("Save(%d)", i.Slot)
	case InstJump:
		return fmt.Sprintf("Jump(%d)", i.To)
	case InstSplit:
		return fmt.Sprintf("Split(%d, %d)", i.X, i.Y)
	default:
		return i.Kind.String()
	}
}

// Program is a compiled pattern: the instruction sequence plus the
// metadata the surface layer needs to drive searches.
type Program struct {
	// Insts is the instruction sequence. Insts[0] is Save(0); the last
	// two instructions are Save(1) and Match.
	Insts []Inst

	// Names maps capture group indices to their names. Index 0 is the
	// whole match and is always "". Unnamed groups are "".
	Names []string

	// Prefix is the longest case-sensitive literal prefix every match
	// must begin with. Empty when no such prefix exists.
	Prefix []byte

	// PrefixLiterals is the set of branch prefixes when the pattern is
	// an alternation whose branches all begin with case-sensitive
	// literals. Nil otherwise. Used to build a multi-literal prefilter.
	PrefixLiterals [][]byte

	numCaptures int
}

// NumCaptures returns the number of capture groups, counting group 0
// (the whole match).
func (p *Program) NumCaptures() int {
	return p.numCaptures
}

// CaptureNames returns a copy of the capture group names. Index 0 is
// always "".
func (p *Program) CaptureNames() []string {
	names := make([]string, len(p.Names))
	copy(names, p.Names)
	return names
}

// IsAnchoredStart reports whether every match must begin at the start of
// the text: the first real instruction is a begin anchor without the
// multi-line flag. The VM uses this to suppress its implicit .*? prefix.
func (p *Program) IsAnchoredStart() bool {
	if len(p.Insts) < 2 {
		return false
	}
	inst := &p.Insts[1]
	return inst.Kind == InstEmptyBegin && !inst.Flags.Has(syntax.FlagMulti)
}

// String returns a listing of the program, one instruction per line.
func (p *Program) String() string {
	var b strings.Builder
	for pc := range p.Insts {
		fmt.Fprintf(&b, "%3d: %v\n", pc, p.Insts[pc].String())
	}
	return b.String()
}
