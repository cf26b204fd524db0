package frontier

import (
	"container/heap"

	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
)

// NoDuplicateFrontier coalesces subproblems that share a root state: pushing
// a state already present updates the existing entry to whichever of the
// two is more promising (same total order as the heap: UB desc, ranking
// desc) instead of inserting a second entry.
//
// Precondition (client responsibility, not checked here): any two
// subproblems with identical root states must be behaviorally equivalent
// for the solver. A client whose SubProblem.Path carries information beyond
// the state must not use this variant — see §4.2.
type NoDuplicateFrontier[S comparable] struct {
	pq      pqueue[S]
	byState map[S]*entry[S]
}

// NewNoDuplicateFrontier constructs an empty frontier ordered by ranking.
func NewNoDuplicateFrontier[S comparable](ranking ddcore.StateRanking[S]) *NoDuplicateFrontier[S] {
	return &NoDuplicateFrontier[S]{
		pq:      pqueue[S]{ranking: ranking},
		byState: make(map[S]*entry[S]),
	}
}

// Push inserts sp, or — if a subproblem rooted at the same state is already
// present — keeps whichever of the two is more promising and re-heapifies
// that single entry in place.
func (f *NoDuplicateFrontier[S]) Push(sp ddcore.SubProblem[S]) {
	if existing, ok := f.byState[sp.State]; ok {
		if f.morePromising(sp, existing.sp) {
			existing.sp = sp
			heap.Fix(&f.pq, existing.index)
		}

		return
	}

	e := &entry[S]{sp: sp}
	heap.Push(&f.pq, e)
	f.byState[sp.State] = e
}

// Pop removes and returns the subproblem with the greatest upper bound
// (ties broken by ranking), deleting its state from the dedup index.
func (f *NoDuplicateFrontier[S]) Pop() (ddcore.SubProblem[S], bool) {
	if f.pq.Len() == 0 {
		var zero ddcore.SubProblem[S]
		return zero, false
	}
	e := heap.Pop(&f.pq).(*entry[S])
	delete(f.byState, e.sp.State)

	return e.sp, true
}

// Clear empties the frontier and its dedup index.
func (f *NoDuplicateFrontier[S]) Clear() {
	f.pq.items = nil
	f.byState = make(map[S]*entry[S])
}

// Size returns the number of distinct states currently held.
func (f *NoDuplicateFrontier[S]) Size() int { return f.pq.Len() }

// morePromising reports whether a should be kept over b under the
// frontier's total order: greater UB wins, ties broken by ranking.
func (f *NoDuplicateFrontier[S]) morePromising(a, b ddcore.SubProblem[S]) bool {
	if a.UB != b.UB {
		return a.UB > b.UB
	}

	return f.pq.ranking.Compare(a.State, b.State) > 0
}

var _ Frontier[int] = (*NoDuplicateFrontier[int])(nil)
