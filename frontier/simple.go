package frontier

import (
	"container/heap"

	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
)

// SimpleFrontier is a plain binary-heap frontier: push and pop are O(log n),
// duplicates (two subproblems sharing a root state) are kept as distinct
// entries. Use NoDuplicateFrontier instead when the client's subproblems
// carry no information beyond their state.
type SimpleFrontier[S comparable] struct {
	pq pqueue[S]
}

// NewSimpleFrontier constructs an empty frontier ordered by ranking.
func NewSimpleFrontier[S comparable](ranking ddcore.StateRanking[S]) *SimpleFrontier[S] {
	return &SimpleFrontier[S]{pq: pqueue[S]{ranking: ranking}}
}

// Push inserts sp, re-establishing the heap invariant in O(log n).
func (f *SimpleFrontier[S]) Push(sp ddcore.SubProblem[S]) {
	heap.Push(&f.pq, &entry[S]{sp: sp})
}

// Pop removes and returns the subproblem with the greatest upper bound
// (ties broken by ranking), or ok=false if the frontier is empty.
func (f *SimpleFrontier[S]) Pop() (ddcore.SubProblem[S], bool) {
	if f.pq.Len() == 0 {
		var zero ddcore.SubProblem[S]
		return zero, false
	}
	e := heap.Pop(&f.pq).(*entry[S])

	return e.sp, true
}

// Clear empties the frontier.
func (f *SimpleFrontier[S]) Clear() {
	f.pq.items = nil
}

// Size returns the number of subproblems currently held.
func (f *SimpleFrontier[S]) Size() int { return f.pq.Len() }

var _ Frontier[int] = (*SimpleFrontier[int])(nil)
