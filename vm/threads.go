package vm

import (
	"github.com/BurntSushi/regexp/internal/conv"
	"github.com/BurntSushi/regexp/internal/sparse"
)

// threadQueue holds one generation of VM threads.
//
// Membership is a sparse set keyed by program counter, so insertion and
// reset are O(1) and a pc can occupy the queue at most once. Each dense
// position owns a preallocated capture array sized at construction, which
// keeps the step loop free of allocation: enqueueing a thread copies the
// tracked slots into storage the queue already owns.
type threadQueue struct {
	set  *sparse.Set
	caps [][]int
}

// newThreadQueue creates a queue for a program with n instructions and
// nslots capture slots per thread.
func newThreadQueue(n, nslots int) *threadQueue {
	q := &threadQueue{
		set:  sparse.NewSet(conv.IntToUint32(n)),
		caps: make([][]int, n),
	}
	backing := make([]int, n*nslots)
	for i := range q.caps {
		q.caps[i] = backing[i*nslots : (i+1)*nslots]
	}
	return q
}

// contains reports whether a pc is already queued.
func (q *threadQueue) contains(pc uint32) bool {
	return q.set.Contains(pc)
}

// add marks a pc as queued and returns its dense position.
func (q *threadQueue) add(pc uint32) int {
	return q.set.Insert(pc)
}

// len returns the number of queued pcs.
func (q *threadQueue) len() int {
	return q.set.Len()
}

// pcAt returns the i'th queued pc in priority order.
func (q *threadQueue) pcAt(i int) uint32 {
	return q.set.Dense()[i]
}

// capsAt returns the capture storage of the i'th queued thread.
func (q *threadQueue) capsAt(i int) []int {
	return q.caps[i]
}

// clear empties the queue in O(1).
func (q *threadQueue) clear() {
	q.set.Clear()
}
