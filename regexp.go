// Package regexp provides linear-time regular expression matching over
// UTF-8 text.
//
// The engine is a Pike VM: patterns are parsed to an AST, compiled to a
// flat instruction program, and executed as a Thompson NFA simulation
// with submatch tracking. A search over n bytes of input with a program
// of m instructions costs O(n·m) in the worst case, for every pattern.
// There is no backtracking and therefore no pathological blowup on
// patterns like (a*)*b.
//
// The syntax is the Perl-like subset that admits linear-time matching:
// no backreferences and no lookaround beyond the zero-width anchors
// ^ $ \A \z \b \B. Case-insensitive matching uses simple uppercase
// folding.
//
// Basic usage:
//
//	re, err := regexp.Compile(`(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	caps := re.Captures([]byte("on 2012-03-14 we shipped"))
//	println(caps.Name("y")) // "2012"
//
// A compiled Regexp is safe for concurrent use: the program is immutable
// and each search draws its own virtual machine from an internal pool.
package regexp

import (
	"sync"

	"github.com/BurntSushi/regexp/prefilter"
	"github.com/BurntSushi/regexp/program"
	"github.com/BurntSushi/regexp/syntax"
	"github.com/BurntSushi/regexp/vm"
)

// Config controls pattern compilation.
type Config struct {
	// MaxProgramSize caps the number of instructions a compiled
	// program may contain. Compilation fails with
	// program.ErrProgramTooBig beyond it.
	// Default: 100000
	MaxProgramSize int
}

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return Config{
		MaxProgramSize: program.DefaultCompilerConfig().MaxProgramSize,
	}
}

// Regexp is a compiled regular expression. It can be used to search,
// split or replace text, concurrently from multiple goroutines.
type Regexp struct {
	pattern string
	prog    *program.Program
	pf      prefilter.Prefilter
	names   map[string]int

	// machines pools per-search virtual machines. The compiled
	// program is immutable; all mutable search state lives in the
	// pooled machines.
	machines sync.Pool
}

// Compile compiles a pattern. Once compiled, a Regexp can be used
// repeatedly and concurrently.
//
// The returned error is a *syntax.Error for invalid patterns, carrying
// the position, kind and message of the failure.
//
// Example:
//
//	re, err := regexp.Compile(`[0-9]{3}-[0-9]{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regexp, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := regexp.DefaultConfig()
//	config.MaxProgramSize = 1 << 20
//	re, err := regexp.CompileWithConfig(`(a{100}){100}`, config)
func CompileWithConfig(pattern string, config Config) (*Regexp, error) {
	expr, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	prog, err := program.CompileWithConfig(expr, program.CompilerConfig{
		MaxProgramSize: config.MaxProgramSize,
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]int)
	for i, name := range prog.Names {
		if name != "" {
			names[name] = i
		}
	}

	re := &Regexp{
		pattern: pattern,
		prog:    prog,
		pf:      buildPrefilter(prog),
		names:   names,
	}
	re.machines.New = func() interface{} {
		return vm.New(prog)
	}
	return re, nil
}

// MustCompile compiles a pattern and panics if it fails. This is for
// patterns known to be valid at program start.
//
// Example:
//
//	var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// buildPrefilter selects a literal prefilter for a program: a substring
// search when every match begins with a single literal prefix, or an
// Aho-Corasick automaton when the pattern is an alternation of
// literal-prefixed branches.
func buildPrefilter(prog *program.Program) prefilter.Prefilter {
	if len(prog.Prefix) > 0 {
		if pf := prefilter.NewMemmem(prog.Prefix); pf != nil {
			return pf
		}
	}
	if pf := prefilter.NewAhoCorasick(prog.PrefixLiterals); pf != nil {
		return pf
	}
	return nil
}

// run executes one search on a pooled machine.
func (re *Regexp) run(kind vm.MatchKind, haystack []byte, start int) []int {
	m := re.machines.Get().(*vm.Machine)
	caps := m.Run(kind, haystack, start, len(haystack), re.pf)
	re.machines.Put(m)
	return caps
}

// String returns the source text the expression was compiled from.
func (re *Regexp) String() string {
	return re.pattern
}

// Program returns the compiled instruction program. It is immutable.
func (re *Regexp) Program() *program.Program {
	return re.prog
}

// NumCaptures returns the number of capture groups, counting group 0
// (the whole match). A pattern like (a)(b) has three.
func (re *Regexp) NumCaptures() int {
	return re.prog.NumCaptures()
}

// CaptureNames returns the names of the capture groups. Index 0 is
// always ""; unnamed groups are "".
//
// Example:
//
//	re := regexp.MustCompile(`(?P<year>\d+)-(\d+)`)
//	names := re.CaptureNames() // ["", "year", ""]
func (re *Regexp) CaptureNames() []string {
	return re.prog.CaptureNames()
}

// IsMatch reports whether the haystack contains any match of the
// pattern. It is the cheapest query: no positions are tracked.
//
// Example:
//
//	re := regexp.MustCompile(`\d+`)
//	re.IsMatch([]byte("hello 123")) // true
func (re *Regexp) IsMatch(haystack []byte) bool {
	return re.run(vm.Exists, haystack, 0) != nil
}

// IsMatchString reports whether the string contains any match of the
// pattern.
func (re *Regexp) IsMatchString(s string) bool {
	return re.IsMatch([]byte(s))
}

// Find returns the leftmost match in the haystack, or nil if there is
// none. Only the position of group 0 is computed; use Captures when
// submatches are needed.
//
// Example:
//
//	re := regexp.MustCompile(`[0-9]{3}-[0-9]{3}-[0-9]{4}`)
//	m := re.Find([]byte("phone: 111-222-3333"))
//	println(m.Start(), m.End()) // 7, 19
func (re *Regexp) Find(haystack []byte) *Match {
	caps := re.run(vm.Location, haystack, 0)
	if caps == nil {
		return nil
	}
	return newMatch(caps[0], caps[1], haystack)
}

// FindString returns the text of the leftmost match in s, or "" if there
// is no match. To distinguish a no-match from an empty match, use Find.
func (re *Regexp) FindString(s string) string {
	m := re.Find([]byte(s))
	if m == nil {
		return ""
	}
	return m.String()
}

// FindIter returns an iterator over all successive non-overlapping
// matches in the haystack.
//
// Example:
//
//	it := re.FindIter(haystack)
//	for m := it.Next(); m != nil; m = it.Next() {
//	    println(m.String())
//	}
func (re *Regexp) FindIter(haystack []byte) *FindMatches {
	return &FindMatches{
		re:        re,
		haystack:  haystack,
		lastMatch: -1,
	}
}

// FindAll returns all successive non-overlapping matches in the
// haystack. If n > 0, at most n matches are returned; if n < 0, all of
// them; n == 0 returns nil.
func (re *Regexp) FindAll(haystack []byte, n int) []*Match {
	if n == 0 {
		return nil
	}
	var matches []*Match
	it := re.FindIter(haystack)
	for m := it.Next(); m != nil; m = it.Next() {
		matches = append(matches, m)
		if n > 0 && len(matches) >= n {
			break
		}
	}
	return matches
}

// Captures returns the capture groups of the leftmost match, or nil if
// there is no match. Group 0 is the whole match.
//
// Example:
//
//	re := regexp.MustCompile(`(?P<last>\S+),\s+(?P<first>\S+)`)
//	caps := re.Captures([]byte("Springsteen, Bruce"))
//	println(caps.Name("first")) // "Bruce"
func (re *Regexp) Captures(haystack []byte) *Captures {
	caps := re.run(vm.Submatches, haystack, 0)
	if caps == nil {
		return nil
	}
	return &Captures{haystack: haystack, locs: caps, names: re.names}
}

// CapturesIter returns an iterator over the capture groups of all
// successive non-overlapping matches. This is FindIter, except it yields
// capture records instead of positions.
func (re *Regexp) CapturesIter(haystack []byte) *FindCaptures {
	return &FindCaptures{
		re:        re,
		haystack:  haystack,
		lastMatch: -1,
	}
}

// Split returns an iterator over the substrings of text delimited by
// matches of the pattern. Each piece is text that is not matched by the
// expression.
//
// Example:
//
//	it := regexp.MustCompile(`[ \t]+`).Split("a b \t  c")
//	for piece, ok := it.Next(); ok; piece, ok = it.Next() {
//	    println(piece) // "a", "b", "c"
//	}
func (re *Regexp) Split(text string) *Splits {
	return &Splits{
		finder: re.FindIter([]byte(text)),
		text:   text,
	}
}

// SplitN returns an iterator over at most limit substrings of text
// delimited by matches of the pattern. The last piece is the unsplit
// remainder of the text. A limit of 0 yields no pieces.
//
// Example:
//
//	it := regexp.MustCompile(`\W+`).SplitN("Hey! How are you?", 3)
//	// "Hey", "How", "are you?"
func (re *Regexp) SplitN(text string, limit int) *SplitsN {
	return &SplitsN{
		splits: re.Split(text),
		limit:  limit,
	}
}

// Replace returns a copy of text with the leftmost match replaced by the
// replacer. If there is no match, the text is returned unchanged.
//
// See Template, NoExpand and ReplacerFunc for the available replacers.
//
// Example:
//
//	re := regexp.MustCompile(`(?P<last>\S+),\s+(?P<first>\S+)`)
//	re.Replace("Springsteen, Bruce", regexp.Template("$first $last"))
//	// "Bruce Springsteen"
func (re *Regexp) Replace(text string, repl Replacer) string {
	return re.ReplaceN(text, 1, repl)
}

// ReplaceAll returns a copy of text with all non-overlapping matches
// replaced by the replacer.
func (re *Regexp) ReplaceAll(text string, repl Replacer) string {
	return re.ReplaceN(text, -1, repl)
}

// ReplaceN returns a copy of text with at most n non-overlapping matches
// replaced by the replacer. If n < 0, all matches are replaced; n == 0
// returns the text unchanged.
func (re *Regexp) ReplaceN(text string, n int, repl Replacer) string {
	if n == 0 {
		return text
	}
	var b []byte
	last := 0
	count := 0
	it := re.CapturesIter([]byte(text))
	for caps := it.Next(); caps != nil; caps = it.Next() {
		if n > 0 && count >= n {
			break
		}
		count++
		s, e, _ := caps.Pos(0)
		b = append(b, text[last:s]...)
		b = append(b, repl.Replace(caps)...)
		last = e
	}
	if count == 0 {
		return text
	}
	b = append(b, text[last:]...)
	return string(b)
}
