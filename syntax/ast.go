package syntax

import (
	"fmt"
	"strings"
)

// Flags is a bitset of parse-time modifiers attached to AST nodes and
// carried through to compiled instructions.
//
// The flag bits mirror the inline pattern syntax: (?i), (?m), (?s) and (?U)
// set the first four. FlagNegated is internal: it records bracketed class
// negation ([^...]) and word boundary negation (\B). The negated shorthands
// \D, \S, \W and \P are instead complemented into their ranges.
type Flags uint8

const (
	// FlagNoCase enables case-insensitive matching (i).
	FlagNoCase Flags = 1 << iota

	// FlagMulti makes ^ and $ match at line boundaries (m).
	FlagMulti

	// FlagDotNL makes . match a newline (s).
	FlagDotNL

	// FlagSwapGreed swaps the meaning of e* and e*? (U).
	FlagSwapGreed

	// FlagNegated marks a negated character class or word boundary.
	FlagNegated
)

// Has returns true if all bits in f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Repeater identifies one of the three basic repetition operators.
// Counted repetitions {n,m} are desugared by the parser and never
// reach the AST.
type Repeater uint8

const (
	// ZeroOne is the ? operator.
	ZeroOne Repeater = iota

	// ZeroMore is the * operator.
	ZeroMore

	// OneMore is the + operator.
	OneMore
)

// String returns the operator's textual form.
func (r Repeater) String() string {
	switch r {
	case ZeroOne:
		return "?"
	case ZeroMore:
		return "*"
	case OneMore:
		return "+"
	default:
		return fmt.Sprintf("Repeater(%d)", r)
	}
}

// ClassRange is an inclusive range of codepoints in a character class.
type ClassRange struct {
	Lo rune
	Hi rune
}

// Expr is a node in the parsed abstract syntax tree.
//
// The concrete types are Empty, Literal, Dot, Class, Begin, End,
// WordBoundary, Capture, Cat, Alt and Rep. Expressions are immutable once
// returned by Parse; Clone produces the deep copies needed when the parser
// desugars counted repetitions.
type Expr interface {
	// Clone returns a deep copy of the expression.
	Clone() Expr
}

// Empty is the empty expression. It matches the empty string and is the
// identity for concatenation; the parser produces it only while desugaring
// counted repetitions with a zero minimum.
type Empty struct{}

// Literal matches a single codepoint. FlagNoCase selects case-insensitive
// comparison under simple uppercase folding.
type Literal struct {
	Ch    rune
	Flags Flags
}

// Dot matches any codepoint except newline, or any codepoint at all when
// FlagDotNL is set.
type Dot struct {
	Flags Flags
}

// Class matches any codepoint inside Ranges, or outside them when
// FlagNegated is set. Ranges are sorted ascending by Lo and merged so that
// adjacent or overlapping ranges never occur.
type Class struct {
	Ranges []ClassRange
	Flags  Flags
}

// Begin matches the beginning of the text, or additionally after a newline
// when FlagMulti is set. It consumes no input.
type Begin struct {
	Flags Flags
}

// End matches the end of the text, or additionally before a newline when
// FlagMulti is set. It consumes no input.
type End struct {
	Flags Flags
}

// WordBoundary matches at an ASCII word boundary, or anywhere but a word
// boundary when FlagNegated is set. It consumes no input.
type WordBoundary struct {
	Flags Flags
}

// Capture is a numbered capture group. Index 0 is reserved for the whole
// match and never appears in a parsed AST. Name is empty for unnamed
// groups.
type Capture struct {
	Index int
	Name  string
	Sub   Expr
}

// Cat is the ordered concatenation of two or more subexpressions.
type Cat struct {
	Subs []Expr
}

// Alt is an ordered alternation. The left alternative is preferred
// (leftmost-first semantics).
type Alt struct {
	Left  Expr
	Right Expr
}

// Rep repeats a subexpression with one of the ?, * or + operators.
// Greedy selects whether the repetition prefers consuming more input.
type Rep struct {
	Sub    Expr
	Op     Repeater
	Greedy bool
}

// Clone implements Expr.
func (e *Empty) Clone() Expr { return &Empty{} }

// Clone implements Expr.
func (e *Literal) Clone() Expr { return &Literal{Ch: e.Ch, Flags: e.Flags} }

// Clone implements Expr.
func (e *Dot) Clone() Expr { return &Dot{Flags: e.Flags} }

// Clone implements Expr.
func (e *Class) Clone() Expr {
	ranges := make([]ClassRange, len(e.Ranges))
	copy(ranges, e.Ranges)
	return &Class{Ranges: ranges, Flags: e.Flags}
}

// Clone implements Expr.
func (e *Begin) Clone() Expr { return &Begin{Flags: e.Flags} }

// Clone implements Expr.
func (e *End) Clone() Expr { return &End{Flags: e.Flags} }

// Clone implements Expr.
func (e *WordBoundary) Clone() Expr { return &WordBoundary{Flags: e.Flags} }

// Clone implements Expr.
func (e *Capture) Clone() Expr {
	return &Capture{Index: e.Index, Name: e.Name, Sub: e.Sub.Clone()}
}

// Clone implements Expr.
func (e *Cat) Clone() Expr {
	subs := make([]Expr, len(e.Subs))
	for i, sub := range e.Subs {
		subs[i] = sub.Clone()
	}
	return &Cat{Subs: subs}
}

// Clone implements Expr.
func (e *Alt) Clone() Expr {
	return &Alt{Left: e.Left.Clone(), Right: e.Right.Clone()}
}

// Clone implements Expr.
func (e *Rep) Clone() Expr {
	return &Rep{Sub: e.Sub.Clone(), Op: e.Op, Greedy: e.Greedy}
}

// String returns a compact debugging form of the expression.
func (e *Empty) String() string { return "Empty" }

func (e *Literal) String() string {
	return fmt.Sprintf("Literal(%q, %d)", e.Ch, e.Flags)
}

func (e *Dot) String() string { return fmt.Sprintf("Dot(%d)", e.Flags) }

func (e *Class) String() string {
	var b strings.Builder
	b.WriteString("Class[")
	for i, r := range e.Ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%q-%q", r.Lo, r.Hi)
	}
	fmt.Fprintf(&b, "](%d)", e.Flags)
	return b.String()
}

func (e *Begin) String() string { return fmt.Sprintf("Begin(%d)", e.Flags) }

func (e *End) String() string { return fmt.Sprintf("End(%d)", e.Flags) }

func (e *WordBoundary) String() string {
	return fmt.Sprintf("WordBoundary(%d)", e.Flags)
}

func (e *Capture) String() string {
	if e.Name != "" {
		return fmt.Sprintf("Capture(%d, %q, %v)", e.Index, e.Name, e.Sub)
	}
	return fmt.Sprintf("Capture(%d, %v)", e.Index, e.Sub)
}

func (e *Cat) String() string {
	parts := make([]string, len(e.Subs))
	for i, sub := range e.Subs {
		parts[i] = fmt.Sprintf("%v", sub)
	}
	return "Cat(" + strings.Join(parts, ", ") + ")"
}

func (e *Alt) String() string { return fmt.Sprintf("Alt(%v, %v)", e.Left, e.Right) }

func (e *Rep) String() string {
	suffix := ""
	if !e.Greedy {
		suffix = "?"
	}
	return fmt.Sprintf("Rep(%v, %v%s)", e.Sub, e.Op, suffix)
}
