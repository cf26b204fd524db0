package mdd

import "github.com/katalvlaran/lvlath-bbmdd/ddcore"

// Mode selects how a compilation handles layers that exceed the configured
// width: Exact never shrinks, Restricted prunes (giving a feasible lower
// bound), Relaxed merges (giving an upper bound plus a cutset). Mirrors the
// enum-with-meaningful-zero-value shape of lvlath/tsp's BoundAlgo.
type Mode int

const (
	// Exact never shrinks a layer; the resulting MDD represents every
	// feasible completion of the residual subproblem exactly.
	Exact Mode = iota

	// Restricted drops the least-promising nodes once a layer exceeds
	// MaxWidth, yielding an under-approximation (a feasible lower bound).
	Restricted

	// Relaxed merges the least-promising nodes of an over-wide layer into
	// one over-approximating node, yielding an upper bound plus a cutset.
	Relaxed
)

// String renders the mode for logs and test failure messages.
func (m Mode) String() string {
	switch m {
	case Exact:
		return "Exact"
	case Restricted:
		return "Restricted"
	case Relaxed:
		return "Relaxed"
	default:
		return "Unknown"
	}
}

// CompilationInput bundles everything one Compile call needs: the client's
// contracts, the residual subproblem to root the diagram at, and the two
// knobs (MaxWidth, BestLB) that bound its size and its pruning.
type CompilationInput[S comparable] struct {
	Mode         Mode
	Problem      ddcore.Problem[S]
	Relaxation   ddcore.Relaxation[S]
	VarHeuristic ddcore.VariableHeuristic[S]
	Ranking      ddcore.StateRanking[S]
	Residual     ddcore.SubProblem[S]
	MaxWidth     int
	BestLB       int
}

// node is one vertex of the internal layered graph: the longest-path
// objective value reaching it, the edge that realizes that value, every
// incoming edge (needed to merge nodes and to propagate local bounds), and
// — for relaxed compilations only — the longest path to any terminal
// (suffix, nil until local-bound propagation runs).
//
// node carries its own state directly rather than relying on a reverse
// state→node layer map to recover it (the spec's prevLayer is state→node,
// which cannot answer "what state produced this node" for an edge's
// origin); denormalizing the state onto the node is the simpler and
// equally correct choice, in the same spirit as lvlath/core.Vertex storing
// its own ID rather than requiring callers to thread it through separately.
type node[S comparable] struct {
	state        S
	value        int
	suffix       *int
	bestIncoming *edge[S]
	incoming     []*edge[S]
}

// edge connects origin to the node holding it, contributing weight to the
// longest-path value when decision is taken.
type edge[S comparable] struct {
	origin   *node[S]
	decision ddcore.Decision
	weight   int
}

// nodeSubProblem associates a state and a rough upper bound with a node
// during a single layer transition. It is the unit the width-control step
// sorts, prunes, and merges, and the shape exported into the LEL cutset.
type nodeSubProblem[S comparable] struct {
	state S
	ub    int
	node  *node[S]
}
