package frontier

import "github.com/katalvlaran/lvlath-bbmdd/ddcore"

// entry is one slot in the underlying binary heap: a subproblem plus its
// current index in the backing slice, the latter kept up to date by Swap so
// that NoDuplicateFrontier can heap.Fix an entry found via its state index.
type entry[S comparable] struct {
	sp    ddcore.SubProblem[S]
	index int
}

// pqueue is the shared heap.Interface implementation for both frontier
// variants: a slice of *entry ordered by (UB desc, ranking desc), grounded
// on lvlath/dijkstra's nodePQ (slice-backed, pointer elements, explicit
// nil-out on Pop so the garbage collector can reclaim dropped entries).
type pqueue[S comparable] struct {
	items   []*entry[S]
	ranking ddcore.StateRanking[S]
}

func (pq *pqueue[S]) Len() int { return len(pq.items) }

// Less orders by descending upper bound; ties are broken by the client's
// StateRanking, larger ranks first — the pop order required by §4.2.
func (pq *pqueue[S]) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.sp.UB != b.sp.UB {
		return a.sp.UB > b.sp.UB
	}

	return pq.ranking.Compare(a.sp.State, b.sp.State) > 0
}

func (pq *pqueue[S]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

// Push appends x (a *entry[S]) to the backing slice and records its index.
// Called by container/heap; callers go through heap.Push.
func (pq *pqueue[S]) Push(x interface{}) {
	e := x.(*entry[S])
	e.index = len(pq.items)
	pq.items = append(pq.items, e)
}

// Pop removes and returns the last element of the backing slice (the root,
// after container/heap has sifted it to the end). The slot is nilled out so
// the popped entry's subproblem path isn't kept alive by a stale slice tail.
func (pq *pqueue[S]) Pop() interface{} {
	old := pq.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]

	return e
}
