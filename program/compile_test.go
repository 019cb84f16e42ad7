package program

import (
	"errors"
	"testing"

	"github.com/BurntSushi/regexp/syntax"
)

func compile(t *testing.T, pattern string) *Program {
	t.Helper()
	expr, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	prog, err := Compile(expr)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return prog
}

func kinds(prog *Program) []InstKind {
	ks := make([]InstKind, len(prog.Insts))
	for i := range prog.Insts {
		ks[i] = prog.Insts[i].Kind
	}
	return ks
}

func expectKinds(t *testing.T, prog *Program, want []InstKind) {
	t.Helper()
	got := kinds(prog)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("inst %d = %v, want %v\n%s", i, got[i], want[i], prog.String())
		}
	}
}

// TestBracketing checks the uniform Save(0) ... Save(1), Match frame.
func TestBracketing(t *testing.T) {
	prog := compile(t, "a")
	expectKinds(t, prog, []InstKind{InstSave, InstChar, InstSave, InstMatch})
	if prog.Insts[0].Slot != 0 {
		t.Error("first instruction must be Save(0)")
	}
	if prog.Insts[2].Slot != 1 {
		t.Error("penultimate instruction must be Save(1)")
	}
}

func TestAlternationLayout(t *testing.T) {
	// 0 Save0, 1 Split(2,4), 2 Char a, 3 Jump(5), 4 Char b, 5 Save1, 6 Match
	prog := compile(t, "a|b")
	expectKinds(t, prog, []InstKind{
		InstSave, InstSplit, InstChar, InstJump, InstChar, InstSave, InstMatch,
	})
	split := prog.Insts[1]
	if split.X != 2 || split.Y != 4 {
		t.Errorf("split = (%d, %d), want (2, 4)", split.X, split.Y)
	}
	if jmp := prog.Insts[3]; jmp.To != 5 {
		t.Errorf("jump = %d, want 5", jmp.To)
	}
}

func TestRepetitionLayouts(t *testing.T) {
	tests := []struct {
		pattern string
		want    []InstKind
		splitPc int
		x, y    uint32
	}{
		// 0 Save0, 1 Split(2,3), 2 Char, 3 Save1, 4 Match
		{"a?", []InstKind{InstSave, InstSplit, InstChar, InstSave, InstMatch}, 1, 2, 3},
		{"a??", []InstKind{InstSave, InstSplit, InstChar, InstSave, InstMatch}, 1, 3, 2},
		// 0 Save0, 1 Split(2,4), 2 Char, 3 Jump(1), 4 Save1, 5 Match
		{"a*", []InstKind{InstSave, InstSplit, InstChar, InstJump, InstSave, InstMatch}, 1, 2, 4},
		{"a*?", []InstKind{InstSave, InstSplit, InstChar, InstJump, InstSave, InstMatch}, 1, 4, 2},
		// 0 Save0, 1 Char, 2 Split(1,3), 3 Save1, 4 Match
		{"a+", []InstKind{InstSave, InstChar, InstSplit, InstSave, InstMatch}, 2, 1, 3},
		{"a+?", []InstKind{InstSave, InstChar, InstSplit, InstSave, InstMatch}, 2, 3, 1},
	}
	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		expectKinds(t, prog, tt.want)
		split := prog.Insts[tt.splitPc]
		if split.X != tt.x || split.Y != tt.y {
			t.Errorf("%q: split = (%d, %d), want (%d, %d)",
				tt.pattern, split.X, split.Y, tt.x, tt.y)
		}
	}
}

func TestStarLoopJump(t *testing.T) {
	prog := compile(t, "a*")
	if jmp := prog.Insts[3]; jmp.Kind != InstJump || jmp.To != 1 {
		t.Errorf("star body must jump back to the split, got %v", jmp.String())
	}
}

// TestTargetsInRange checks that every jump and split refers to a valid
// pc.
func TestTargetsInRange(t *testing.T) {
	patterns := []string{
		"a|b|c|d",
		"(a*)*",
		"(a+|b?)*c{2,5}",
		`(?:ab|cd)+ef`,
		`((a)(b(c)))?`,
	}
	for _, pattern := range patterns {
		prog := compile(t, pattern)
		n := uint32(len(prog.Insts))
		for pc, inst := range prog.Insts {
			switch inst.Kind {
			case InstJump:
				if inst.To >= n {
					t.Errorf("%q: jump at %d targets %d, program has %d", pattern, pc, inst.To, n)
				}
			case InstSplit:
				if inst.X >= n || inst.Y >= n {
					t.Errorf("%q: split at %d targets (%d, %d), program has %d",
						pattern, pc, inst.X, inst.Y, n)
				}
			}
		}
	}
}

func TestCaptureSaves(t *testing.T) {
	// 0 Save0, 1 Save2, 2 Char a, 3 Save3, 4 Save1, 5 Match
	prog := compile(t, "(a)")
	expectKinds(t, prog, []InstKind{
		InstSave, InstSave, InstChar, InstSave, InstSave, InstMatch,
	})
	if prog.Insts[1].Slot != 2 || prog.Insts[3].Slot != 3 {
		t.Errorf("capture saves = (%d, %d), want (2, 3)",
			prog.Insts[1].Slot, prog.Insts[3].Slot)
	}
	if prog.NumCaptures() != 2 {
		t.Errorf("NumCaptures = %d, want 2", prog.NumCaptures())
	}
}

func TestCaptureNames(t *testing.T) {
	prog := compile(t, `(?P<year>\d+)-(\d+)-(?P<day>\d+)`)
	want := []string{"", "year", "", "day"}
	got := prog.CaptureNames()
	if len(got) != len(want) {
		t.Fatalf("CaptureNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
	if prog.NumCaptures() != 4 {
		t.Errorf("NumCaptures = %d, want 4", prog.NumCaptures())
	}
}

func TestLiteralPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"abc", "abc"},
		{"abc+", "abc"},
		{"ab?", "a"},
		{"a|b", ""},
		{"(abc)", ""},    // prefix scan skips only the leading Save(0)
		{"(?i)abc", ""},  // case-insensitive literals don't qualify
		{"^abc", ""},     // anchors end the scan
		{"日本語!", "日本語!"}, // prefixes are UTF-8 bytes
	}
	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		if string(prog.Prefix) != tt.want {
			t.Errorf("prefix of %q = %q, want %q", tt.pattern, prog.Prefix, tt.want)
		}
	}
}

func TestAlternationLiterals(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"foo|bar|baz", []string{"foo", "bar", "baz"}},
		{"foo\\d+|bar", []string{"foo", "bar"}},
		{"(get|put)", nil}, // not a top-level alternation
		{"foo|\\d+", nil},  // a branch without a literal prefix
		{"foo|(?i)bar", nil},
		{"foo", nil},
	}
	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		if len(prog.PrefixLiterals) != len(tt.want) {
			t.Errorf("literals of %q = %q, want %q", tt.pattern, prog.PrefixLiterals, tt.want)
			continue
		}
		for i := range tt.want {
			if string(prog.PrefixLiterals[i]) != tt.want[i] {
				t.Errorf("literal %d of %q = %q, want %q",
					i, tt.pattern, prog.PrefixLiterals[i], tt.want[i])
			}
		}
	}
}

func TestIsAnchoredStart(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"^abc", true},
		{`\Aabc`, true},
		{"abc", false},
		{"(?m)^abc", false}, // multi-line ^ can match past the start
		{"(^a)", false},     // the anchor hides behind a capture save
	}
	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		if got := prog.IsAnchoredStart(); got != tt.want {
			t.Errorf("IsAnchoredStart(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestProgramSizeLimit(t *testing.T) {
	expr, err := syntax.Parse("(a{100}){100}")
	if err != nil {
		t.Fatal(err)
	}
	_, err = CompileWithConfig(expr, CompilerConfig{MaxProgramSize: 1000})
	if !errors.Is(err, ErrProgramTooBig) {
		t.Fatalf("err = %v, want ErrProgramTooBig", err)
	}

	// The same pattern compiles under the default limit.
	if _, err := Compile(expr); err != nil {
		t.Fatalf("default limit rejected a 10k-instruction program: %v", err)
	}
}

func TestCompileClassAndAnchors(t *testing.T) {
	prog := compile(t, `(?m)^[a-z]+\b$`)
	expectKinds(t, prog, []InstKind{
		InstSave, InstEmptyBegin, InstRanges, InstSplit, InstWordBoundary,
		InstEmptyEnd, InstSave, InstMatch,
	})
	if !prog.Insts[1].Flags.Has(syntax.FlagMulti) {
		t.Error("^ under (?m) must carry the multi-line flag")
	}
}
