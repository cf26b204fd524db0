package frontier

import "github.com/katalvlaran/lvlath-bbmdd/ddcore"

// Frontier is the priority queue of open subproblems the engine drives:
// pop always returns the subproblem with the greatest upper bound, ties
// broken by the client's state ranking (larger ranks first).
type Frontier[S comparable] interface {
	// Push inserts sp into the frontier.
	Push(sp ddcore.SubProblem[S])

	// Pop removes and returns the most promising subproblem. ok is false
	// iff the frontier is empty.
	Pop() (sp ddcore.SubProblem[S], ok bool)

	// Clear empties the frontier.
	Clear()

	// Size reports the number of subproblems currently held.
	Size() int
}
