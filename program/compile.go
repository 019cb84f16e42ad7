package program

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/regexp/internal/conv"
	"github.com/BurntSushi/regexp/syntax"
)

// ErrProgramTooBig is returned when compilation would exceed the
// configured program size limit. Counted repetitions are bounded by the
// parser, but nested counted repetitions still multiply, so the compiler
// enforces a hard ceiling on the instruction count.
var ErrProgramTooBig = errors.New("regexp: compiled program exceeds size limit")

// CompilerConfig configures program compilation.
type CompilerConfig struct {
	// MaxProgramSize is the maximum number of instructions a program
	// may contain. Compilation fails with ErrProgramTooBig beyond it.
	// Default: 100000
	MaxProgramSize int
}

// DefaultCompilerConfig returns a compiler configuration with sensible
// defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxProgramSize: 100000,
	}
}

// BuildError reports an internal compiler invariant violation, such as an
// attempt to back-patch an instruction that is not a jump or split. A
// valid AST never produces one.
type BuildError struct {
	Pc  int
	Msg string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("regexp: program build error at pc %d: %s", e.Pc, e.Msg)
}

// Compile lowers an AST to a program using the default configuration.
func Compile(expr syntax.Expr) (*Program, error) {
	return CompileWithConfig(expr, DefaultCompilerConfig())
}

// CompileWithConfig lowers an AST to a program.
//
// The emitted program is bracketed by Save(0) at the front and Save(1),
// Match at the back so that the whole-match position is captured the same
// way as any other group.
func CompileWithConfig(expr syntax.Expr, config CompilerConfig) (*Program, error) {
	if config.MaxProgramSize == 0 {
		config.MaxProgramSize = DefaultCompilerConfig().MaxProgramSize
	}
	c := &compiler{config: config, names: map[int]string{}}

	if err := c.push(Inst{Kind: InstSave, Slot: 0}); err != nil {
		return nil, err
	}
	if err := c.emit(expr); err != nil {
		return nil, err
	}
	if err := c.push(Inst{Kind: InstSave, Slot: 1}); err != nil {
		return nil, err
	}
	if err := c.push(Inst{Kind: InstMatch}); err != nil {
		return nil, err
	}

	numCaptures := (c.maxSlot + 2) / 2
	names := make([]string, numCaptures)
	for i, name := range c.names {
		if i < numCaptures {
			names[i] = name
		}
	}
	prog := &Program{
		Insts:       c.insts,
		Names:       names,
		numCaptures: numCaptures,
	}
	prog.Prefix = literalPrefix(prog.Insts)
	prog.PrefixLiterals = alternationLiterals(expr)
	return prog, nil
}

type compiler struct {
	config  CompilerConfig
	insts   []Inst
	maxSlot int
	names   map[int]string
}

func (c *compiler) push(inst Inst) error {
	if len(c.insts) >= c.config.MaxProgramSize {
		return ErrProgramTooBig
	}
	c.insts = append(c.insts, inst)
	return nil
}

// emit compiles one AST node, appending instructions and back-patching
// jump and split targets as layouts complete.
func (c *compiler) emit(expr syntax.Expr) error {
	switch e := expr.(type) {
	case *syntax.Empty:
		return nil

	case *syntax.Literal:
		return c.push(Inst{Kind: InstChar, Ch: e.Ch, Flags: e.Flags})

	case *syntax.Dot:
		return c.push(Inst{Kind: InstAny, Flags: e.Flags})

	case *syntax.Class:
		return c.push(Inst{Kind: InstRanges, Ranges: e.Ranges, Flags: e.Flags})

	case *syntax.Begin:
		return c.push(Inst{Kind: InstEmptyBegin, Flags: e.Flags})

	case *syntax.End:
		return c.push(Inst{Kind: InstEmptyEnd, Flags: e.Flags})

	case *syntax.WordBoundary:
		return c.push(Inst{Kind: InstWordBoundary, Flags: e.Flags})

	case *syntax.Capture:
		if e.Name != "" {
			c.names[e.Index] = e.Name
		}
		if err := c.save(2 * e.Index); err != nil {
			return err
		}
		if err := c.emit(e.Sub); err != nil {
			return err
		}
		return c.save(2*e.Index + 1)

	case *syntax.Cat:
		for _, sub := range e.Subs {
			if err := c.emit(sub); err != nil {
				return err
			}
		}
		return nil

	case *syntax.Alt:
		split := len(c.insts)
		if err := c.push(Inst{Kind: InstSplit}); err != nil {
			return err
		}
		j1 := len(c.insts)
		if err := c.emit(e.Left); err != nil {
			return err
		}
		jmp := len(c.insts)
		if err := c.push(Inst{Kind: InstJump}); err != nil {
			return err
		}
		j2 := len(c.insts)
		if err := c.emit(e.Right); err != nil {
			return err
		}
		j3 := len(c.insts)
		if err := c.setSplit(split, j1, j2); err != nil {
			return err
		}
		return c.setJump(jmp, j3)

	case *syntax.Rep:
		return c.emitRep(e)

	default:
		return &BuildError{Pc: len(c.insts), Msg: fmt.Sprintf("unknown AST node %T", expr)}
	}
}

func (c *compiler) emitRep(e *syntax.Rep) error {
	switch e.Op {
	case syntax.ZeroOne:
		split := len(c.insts)
		if err := c.push(Inst{Kind: InstSplit}); err != nil {
			return err
		}
		j1 := len(c.insts)
		if err := c.emit(e.Sub); err != nil {
			return err
		}
		j2 := len(c.insts)
		if e.Greedy {
			return c.setSplit(split, j1, j2)
		}
		return c.setSplit(split, j2, j1)

	case syntax.ZeroMore:
		j1 := len(c.insts)
		split := j1
		if err := c.push(Inst{Kind: InstSplit}); err != nil {
			return err
		}
		j2 := len(c.insts)
		if err := c.emit(e.Sub); err != nil {
			return err
		}
		jmp := len(c.insts)
		if err := c.push(Inst{Kind: InstJump}); err != nil {
			return err
		}
		j3 := len(c.insts)
		if err := c.setJump(jmp, j1); err != nil {
			return err
		}
		if e.Greedy {
			return c.setSplit(split, j2, j3)
		}
		return c.setSplit(split, j3, j2)

	case syntax.OneMore:
		j1 := len(c.insts)
		if err := c.emit(e.Sub); err != nil {
			return err
		}
		split := len(c.insts)
		if err := c.push(Inst{Kind: InstSplit}); err != nil {
			return err
		}
		j2 := len(c.insts)
		if e.Greedy {
			return c.setSplit(split, j1, j2)
		}
		return c.setSplit(split, j2, j1)

	default:
		return &BuildError{Pc: len(c.insts), Msg: fmt.Sprintf("unknown repeat operator %v", e.Op)}
	}
}

func (c *compiler) save(slot int) error {
	if slot > c.maxSlot {
		c.maxSlot = slot
	}
	return c.push(Inst{Kind: InstSave, Slot: slot})
}

func (c *compiler) setSplit(pc, x, y int) error {
	inst := &c.insts[pc]
	if inst.Kind != InstSplit {
		return &BuildError{Pc: pc, Msg: "patch target is not a split"}
	}
	inst.X = conv.IntToUint32(x)
	inst.Y = conv.IntToUint32(y)
	return nil
}

func (c *compiler) setJump(pc, to int) error {
	inst := &c.insts[pc]
	if inst.Kind != InstJump {
		return &BuildError{Pc: pc, Msg: "patch target is not a jump"}
	}
	inst.To = conv.IntToUint32(to)
	return nil
}

// literalPrefix scans past the leading Save(0) and accumulates the
// literal characters every match must begin with: consecutive Char
// instructions with no flags.
func literalPrefix(insts []Inst) []byte {
	var prefix []byte
	for pc := 1; pc < len(insts); pc++ {
		inst := &insts[pc]
		if inst.Kind != InstChar || inst.Flags != 0 {
			break
		}
		prefix = utf8.AppendRune(prefix, inst.Ch)
	}
	return prefix
}

// alternationLiterals extracts the branch prefixes of a top-level
// alternation when every branch begins with a nonempty case-sensitive
// literal. The result feeds a multi-literal prefilter; nil means no such
// decomposition exists.
func alternationLiterals(expr syntax.Expr) [][]byte {
	alt, ok := expr.(*syntax.Alt)
	if !ok {
		return nil
	}
	var branches []syntax.Expr
	for {
		branches = append(branches, alt.Left)
		next, ok := alt.Right.(*syntax.Alt)
		if !ok {
			branches = append(branches, alt.Right)
			break
		}
		alt = next
	}
	lits := make([][]byte, 0, len(branches))
	for _, branch := range branches {
		lit, _ := branchPrefix(branch)
		if len(lit) == 0 {
			return nil
		}
		lits = append(lits, lit)
	}
	return lits
}

// branchPrefix returns the literal prefix of an expression and whether
// the expression is wholly literal (so a following sibling may extend the
// prefix).
func branchPrefix(expr syntax.Expr) (prefix []byte, complete bool) {
	switch e := expr.(type) {
	case *syntax.Empty:
		return nil, true
	case *syntax.Literal:
		if e.Flags != 0 {
			return nil, false
		}
		return utf8.AppendRune(nil, e.Ch), true
	case *syntax.Capture:
		return branchPrefix(e.Sub)
	case *syntax.Cat:
		var buf []byte
		for _, sub := range e.Subs {
			part, ok := branchPrefix(sub)
			buf = append(buf, part...)
			if !ok {
				return buf, false
			}
		}
		return buf, true
	default:
		return nil, false
	}
}
