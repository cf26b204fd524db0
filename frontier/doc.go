// Package frontier implements the open-subproblem priority queue the
// parallel branch-and-bound engine pops from: a simple binary heap, and a
// duplicate-coalescing variant keyed by state.
//
// Both implementations are built on container/heap the way
// lvlath/dijkstra's internal priority queue is: a slice-backed
// heap.Interface of pointer elements, so container/heap's Pop can null out
// the trailing slot for the garbage collector. Neither type locks
// internally — callers (the B&B engine) serialize all access under their
// own monitor, exactly as lvlath/core splits locking by the concern that
// owns the invariant rather than locking every data structure it touches.
package frontier
