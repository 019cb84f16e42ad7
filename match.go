package regexp

// Match represents a successful match with position information.
//
// A Match holds the start (inclusive) and end (exclusive) byte offsets of
// the matched text, plus a reference to the haystack that was searched.
// Offsets always fall on UTF-8 codepoint boundaries.
//
// Example:
//
//	re := regexp.MustCompile(`\d+`)
//	m := re.Find([]byte("age: 42"))
//	println(m.Start(), m.End()) // 5, 7
//	println(m.String())         // "42"
type Match struct {
	start    int
	end      int
	haystack []byte
}

// newMatch creates a Match from start and end positions. The haystack is
// stored by reference, not copied.
func newMatch(start, end int, haystack []byte) *Match {
	return &Match{
		start:    start,
		end:      end,
		haystack: haystack,
	}
}

// Start returns the inclusive start offset of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end offset of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.end - m.start
}

// Bytes returns the matched bytes as a view into the original haystack.
// Callers that retain the result past the haystack's lifetime should copy
// it.
func (m *Match) Bytes() []byte {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return nil
	}
	return m.haystack[m.start:m.end]
}

// String returns the matched text as a newly allocated string.
func (m *Match) String() string {
	return string(m.Bytes())
}

// IsEmpty returns true if the match has zero length. Empty matches occur
// with patterns like a* that can match without consuming input.
func (m *Match) IsEmpty() bool {
	return m.start == m.end
}
