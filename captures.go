package regexp

import (
	"strconv"
)

// Captures represents the capture groups of a single match.
//
// Group 0 always corresponds to the entire match; each subsequent index
// corresponds to the next capture group in the pattern. Named groups are
// additionally accessible through Name. Group positions are byte offsets
// into the searched haystack.
type Captures struct {
	haystack []byte

	// locs is the flat slot array produced by the VM: slot 2k is the
	// start of group k and slot 2k+1 its end, or -1 when the group did
	// not participate in the match.
	locs []int

	names map[string]int
}

// Len returns the number of capture groups, counting group 0.
func (c *Captures) Len() int {
	return len(c.locs) / 2
}

// Pos returns the start and end offsets of group i. The third result is
// false when i is out of range or the group did not participate in the
// match; a participating group always has both offsets set.
func (c *Captures) Pos(i int) (start, end int, ok bool) {
	if i < 0 || 2*i+1 >= len(c.locs) {
		return 0, 0, false
	}
	start, end = c.locs[2*i], c.locs[2*i+1]
	if start < 0 || end < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// At returns the text matched by group i, or "" when the group did not
// participate in the match.
func (c *Captures) At(i int) string {
	start, end, ok := c.Pos(i)
	if !ok {
		return ""
	}
	return string(c.haystack[start:end])
}

// Name returns the text matched by the named group, or "" when no group
// has that name or it did not participate in the match.
func (c *Captures) Name(name string) string {
	i, ok := c.names[name]
	if !ok {
		return ""
	}
	return c.At(i)
}

// Expand replaces every $N and $name reference in the template with the
// corresponding capture group's text. References to groups that do not
// exist expand to the empty string. A literal dollar sign is written $$.
//
// Example:
//
//	re := regexp.MustCompile(`(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})`)
//	caps := re.Captures([]byte("2012-03-14"))
//	caps.Expand("$m/$d/$y") // "03/14/2012"
func (c *Captures) Expand(template string) string {
	var b []byte
	for i := 0; i < len(template); {
		if template[i] != '$' {
			b = append(b, template[i])
			i++
			continue
		}
		if i+1 < len(template) && template[i+1] == '$' {
			b = append(b, '$')
			i += 2
			continue
		}
		j := i + 1
		for j < len(template) && isWordByte(template[j]) {
			j++
		}
		if j == i+1 {
			b = append(b, '$')
			i++
			continue
		}
		ref := template[i+1 : j]
		if n, err := strconv.Atoi(ref); err == nil {
			b = append(b, c.At(n)...)
		} else {
			b = append(b, c.Name(ref)...)
		}
		i = j
	}
	return string(b)
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// Replacer produces the replacement text for a match during Replace,
// ReplaceAll and ReplaceN.
type Replacer interface {
	// Replace returns the replacement for the match described by caps.
	Replace(caps *Captures) string
}

// Template is a replacement string in which $N and $name expand to
// capture groups and $$ is a literal dollar sign.
type Template string

// Replace implements Replacer.
func (t Template) Replace(caps *Captures) string {
	return caps.Expand(string(t))
}

// NoExpand is a replacement string used literally: no $ expansion is
// performed.
//
// Example:
//
//	re.Replace("Springsteen, Bruce", regexp.NoExpand("$2 $1"))
//	// "$2 $1"
type NoExpand string

// Replace implements Replacer.
func (n NoExpand) Replace(*Captures) string {
	return string(n)
}

// ReplacerFunc adapts a function to the Replacer interface, giving the
// replacement direct access to the match's capture groups.
//
// Example:
//
//	re := regexp.MustCompile(`([^,\s]+),\s+(\S+)`)
//	re.Replace("Springsteen, Bruce", regexp.ReplacerFunc(func(caps *regexp.Captures) string {
//	    return caps.At(2) + " " + caps.At(1)
//	}))
//	// "Bruce Springsteen"
type ReplacerFunc func(caps *Captures) string

// Replace implements Replacer.
func (f ReplacerFunc) Replace(caps *Captures) string {
	return f(caps)
}
