// Package sparse provides a sparse set over a bounded universe of uint32
// values.
//
// A sparse set supports O(1) insertion, membership testing and reset at
// the cost of leaving its sparse array uninitialized. The Pike VM uses it
// to record which program counters already occupy a thread queue, which
// keeps epsilon-closure expansion cycle-free without clearing any memory
// between steps.
package sparse

// Set is a set of uint32 values below a fixed capacity.
//
// Membership is validated by cross-checking the sparse and dense arrays,
// so the sparse array never needs zeroing: a stale sparse entry fails the
// dense cross-check.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSet creates a set holding values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, capacity),
	}
}

// Insert adds a value to the set and reports the position it occupies in
// the dense array. Inserting a value already present is a no-op that
// returns its existing position. Values at or above the capacity are
// rejected with a negative position.
func (s *Set) Insert(value uint32) int {
	if int(value) >= len(s.sparse) {
		return -1
	}
	if i, ok := s.index(value); ok {
		return i
	}
	i := s.size
	s.dense[i] = value
	s.sparse[value] = i
	s.size++
	return int(i)
}

// Contains reports whether the value is in the set.
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	_, ok := s.index(value)
	return ok
}

func (s *Set) index(value uint32) (int, bool) {
	i := s.sparse[value]
	if i < s.size && s.dense[i] == value {
		return int(i), true
	}
	return 0, false
}

// Clear removes all elements in O(1).
func (s *Set) Clear() {
	s.size = 0
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.size)
}

// Dense returns the values in insertion order. The slice is valid until
// the next Insert or Clear.
func (s *Set) Dense() []uint32 {
	return s.dense[:s.size]
}
