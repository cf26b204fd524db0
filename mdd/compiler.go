package mdd

import (
	"iter"
	"sort"

	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
)

// Compiler builds one layered MDD at a time from a CompilationInput. It is
// meant to be constructed once per worker and reused across many Compile
// calls — Compile always starts by clearing the previous compilation's
// buffers rather than allocating a fresh Compiler, grounded on
// lvlath/tsp's bbEngine (tsp/bb.go), which resets its own slices in place
// on every call instead of being reconstructed per subproblem.
type Compiler[S comparable] struct {
	nextLayer     map[S]*node[S]
	currentLayer  []nodeSubProblem[S]
	prevLayerList []nodeSubProblem[S]
	lel           []nodeSubProblem[S]
	lelSet        map[*node[S]]bool

	pathToRoot []ddcore.Decision
	best       *node[S]
	depth      int
}

// NewCompiler returns an empty, ready-to-use compiler.
func NewCompiler[S comparable]() *Compiler[S] {
	return &Compiler[S]{nextLayer: make(map[S]*node[S])}
}

// clear resets every buffer for a new Compile call without discarding the
// Compiler itself.
func (c *Compiler[S]) clear() {
	clear(c.nextLayer)
	c.currentLayer = c.currentLayer[:0]
	c.prevLayerList = nil
	c.lel = nil
	c.lelSet = nil
	c.pathToRoot = nil
	c.best = nil
	c.depth = 0
}

// Compile builds the layered diagram described by input. It never returns
// an error for an infeasible subproblem (see IsExact/BestValue/
// BestSolution) — only for malformed input.
func (c *Compiler[S]) Compile(input CompilationInput[S]) error {
	if input.MaxWidth < 1 {
		return ErrInvalidMaxWidth
	}
	if input.Mode != Exact && input.Mode != Restricted && input.Mode != Relaxed {
		return ErrInvalidMode
	}
	c.clear()

	root := &node[S]{state: input.Residual.State, value: input.Residual.Value}
	c.nextLayer[root.state] = root
	c.pathToRoot = append([]ddcore.Decision{}, input.Residual.Path...)

	unassigned := unassignedVars(input.Problem.NbVars(), c.pathToRoot)

	for len(unassigned) > 0 {
		v, ok := input.VarHeuristic.NextVariable(unassigned, statesOf(c.nextLayer))
		if !ok {
			c.clear()
			return nil
		}

		c.rotateLayers(input, unassigned)
		if len(c.currentLayer) == 0 {
			c.clear()
			return nil
		}

		unassigned = removeVar(unassigned, v)

		c.controlWidth(input)
		c.branch(input, v)
		c.depth++
	}

	c.pickBest()
	if input.Mode == Relaxed {
		c.propagateLocalBounds()
	}

	return nil
}

// rotateLayers snapshots the current layer (for LEL capture and local-bound
// ancestry), computes each next-layer node's rough upper bound, and
// installs it as the new current layer.
func (c *Compiler[S]) rotateLayers(input CompilationInput[S], unassigned []int) {
	c.prevLayerList = c.currentLayer
	next := make([]nodeSubProblem[S], 0, len(c.nextLayer))
	for state, nd := range c.nextLayer {
		rub := ddcore.SaturatedAdd(nd.value, input.Relaxation.FastUpperBound(state, unassigned))
		next = append(next, nodeSubProblem[S]{state: state, ub: rub, node: nd})
	}
	c.currentLayer = next
	clear(c.nextLayer)
}

// controlWidth shrinks the current layer when it outgrew MaxWidth, per
// input.Mode. Shrinking never fires before depth 2 — see the design notes'
// "why two-layer LEL delay".
func (c *Compiler[S]) controlWidth(input CompilationInput[S]) {
	if c.depth < 2 || len(c.currentLayer) <= input.MaxWidth || input.Mode == Exact {
		return
	}

	if len(c.lel) == 0 {
		c.captureLEL()
	}
	sortByPromise(c.currentLayer, input.Ranking)

	switch input.Mode {
	case Restricted:
		c.currentLayer = c.currentLayer[:input.MaxWidth]
	case Relaxed:
		c.mergeOverflow(input)
	}
}

// captureLEL records the layer one above current as the last exact layer.
func (c *Compiler[S]) captureLEL() {
	c.lel = append([]nodeSubProblem[S]{}, c.prevLayerList...)
	c.lelSet = make(map[*node[S]]bool, len(c.lel))
	for _, nsp := range c.lel {
		c.lelSet[nsp.node] = true
	}
}

// mergeOverflow implements relaxed width control: keep the MaxWidth-1 most
// promising node-subproblems, merge the rest into one over-approximating
// node (reusing an already-kept node if the client's merged state
// coincides with it).
func (c *Compiler[S]) mergeOverflow(input CompilationInput[S]) {
	keep := c.currentLayer[:input.MaxWidth-1]
	merge := c.currentLayer[input.MaxWidth-1:]

	mergedState := input.Relaxation.MergeStates(statesOfSlice(merge))

	var target *nodeSubProblem[S]
	fresh := true
	for i := range keep {
		if keep[i].state == mergedState {
			target = &keep[i]
			fresh = false
			break
		}
	}
	if target == nil {
		target = &nodeSubProblem[S]{
			state: mergedState,
			ub:    ddcore.MinInt,
			node:  &node[S]{state: mergedState, value: ddcore.MinInt},
		}
	}

	for _, drop := range merge {
		if drop.ub > target.ub {
			target.ub = drop.ub
		}
		for _, e := range drop.node.incoming {
			rcost := input.Relaxation.RelaxEdge(e.origin.state, drop.state, mergedState, e.decision, e.weight)
			e.weight = rcost
			target.node.incoming = append(target.node.incoming, e)
			if candidate := ddcore.SaturatedAdd(e.origin.value, rcost); candidate > target.node.value {
				target.node.value = candidate
				target.node.bestIncoming = e
			}
		}
	}

	result := append([]nodeSubProblem[S]{}, keep...)
	if fresh {
		result = append(result, *target)
	}
	c.currentLayer = result
}

// branch expands every surviving node-subproblem across domain(state, v),
// pruning those whose rough upper bound cannot beat the engine's current
// best lower bound.
func (c *Compiler[S]) branch(input CompilationInput[S], v int) {
	for _, n := range c.currentLayer {
		if n.ub <= input.BestLB {
			continue
		}
		for x := range input.Problem.Domain(n.state, v) {
			d := ddcore.Decision{Var: v, Val: x}
			childState := input.Problem.Transition(n.state, d)
			cost := input.Problem.TransitionCost(n.state, d)
			childValue := ddcore.SaturatedAdd(n.node.value, cost)

			child, ok := c.nextLayer[childState]
			if !ok {
				child = &node[S]{state: childState, value: childValue}
				c.nextLayer[childState] = child
			}
			e := &edge[S]{origin: n.node, decision: d, weight: cost}
			child.incoming = append(child.incoming, e)
			if childValue >= child.value {
				child.value = childValue
				child.bestIncoming = e
			}
		}
	}
}

// pickBest selects the terminal node with the maximal longest-path value.
func (c *Compiler[S]) pickBest() {
	var best *node[S]
	for _, nd := range c.nextLayer {
		if best == nil || nd.value > best.value {
			best = nd
		}
	}
	c.best = best
}

// propagateLocalBounds runs the relaxed-only suffix propagation: terminal
// nodes start at suffix 0, and each wavefront pushes max(child.suffix +
// edge.weight) onto its origins, stopping after the wavefront that reaches
// the LEL's layer. LEL nodes with no path to a terminal (pruned or dead
// ends) keep a nil suffix.
func (c *Compiler[S]) propagateLocalBounds() {
	current := make(map[*node[S]]bool, len(c.nextLayer))
	for _, nd := range c.nextLayer {
		zero := 0
		nd.suffix = &zero
		current[nd] = true
	}

	for len(current) > 0 {
		next := make(map[*node[S]]bool)
		reachedLEL := false
		for nd := range current {
			for _, e := range nd.incoming {
				o := e.origin
				candidate := ddcore.SaturatedAdd(*nd.suffix, e.weight)
				if o.suffix == nil || candidate > *o.suffix {
					v := candidate
					o.suffix = &v
				}
				next[o] = true
				if c.lelSet[o] {
					reachedLEL = true
				}
			}
		}
		if reachedLEL || len(next) == 0 {
			break
		}
		current = next
	}
}

// IsExact reports whether the whole diagram stayed exact (the LEL is
// empty, i.e. no layer ever required shrinking).
func (c *Compiler[S]) IsExact() bool { return len(c.lel) == 0 }

// BestValue returns the best terminal's longest-path value, or ok=false if
// the compiled subproblem was infeasible.
func (c *Compiler[S]) BestValue() (value int, ok bool) {
	if c.best == nil {
		return 0, false
	}
	return c.best.value, true
}

// BestSolution returns the complete decision path (pathToRoot included) to
// the best terminal, or ok=false if the compiled subproblem was
// infeasible.
func (c *Compiler[S]) BestSolution() (path []ddcore.Decision, ok bool) {
	if c.best == nil {
		return nil, false
	}
	return c.pathFor(c.best), true
}

// ExactCutset converts every node-subproblem of the last exact layer into a
// SubProblem for re-insertion into the engine's frontier. Only meaningful
// after a Relaxed compile that did not stay exact (IsExact() == false);
// callers never query it otherwise.
func (c *Compiler[S]) ExactCutset() []ddcore.SubProblem[S] {
	out := make([]ddcore.SubProblem[S], 0, len(c.lel))
	for _, nsp := range c.lel {
		localBound := ddcore.MinInt
		if nsp.node.suffix != nil {
			localBound = ddcore.SaturatedAdd(nsp.node.value, *nsp.node.suffix)
		}
		ub := nsp.ub
		if localBound < ub {
			ub = localBound
		}
		out = append(out, ddcore.SubProblem[S]{
			State: nsp.state,
			Value: nsp.node.value,
			UB:    ub,
			Path:  c.pathFor(nsp.node),
		})
	}
	return out
}

// pathFor reconstructs pathToRoot followed by the decisions on the best
// path from the compilation root to n.
func (c *Compiler[S]) pathFor(n *node[S]) []ddcore.Decision {
	var suffix []ddcore.Decision
	for cur := n; cur.bestIncoming != nil; cur = cur.bestIncoming.origin {
		suffix = append(suffix, cur.bestIncoming.decision)
	}
	path := make([]ddcore.Decision, 0, len(c.pathToRoot)+len(suffix))
	path = append(path, c.pathToRoot...)
	for i := len(suffix) - 1; i >= 0; i-- {
		path = append(path, suffix[i])
	}
	return path
}

// sortByPromise orders ns descending by node value, ties broken by ranking
// on the state — the ordering §4.3 uses to decide what survives shrinking.
// Grounded on lvlath/tsp's neighborOrder (tsp/bb.go): a plain sort.Interface
// with one numeric primary key and a deterministic secondary tiebreak.
func sortByPromise[S comparable](ns []nodeSubProblem[S], ranking ddcore.StateRanking[S]) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].node.value != ns[j].node.value {
			return ns[i].node.value > ns[j].node.value
		}
		return ranking.Compare(ns[i].state, ns[j].state) > 0
	})
}

func statesOf[S comparable](m map[S]*node[S]) iter.Seq[S] {
	return func(yield func(S) bool) {
		for s := range m {
			if !yield(s) {
				return
			}
		}
	}
}

func statesOfSlice[S comparable](ns []nodeSubProblem[S]) iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, n := range ns {
			if !yield(n.state) {
				return
			}
		}
	}
}

func unassignedVars(nbVars int, path []ddcore.Decision) []int {
	assigned := make(map[int]bool, len(path))
	for _, d := range path {
		assigned[d.Var] = true
	}
	out := make([]int, 0, nbVars-len(path))
	for v := 0; v < nbVars; v++ {
		if !assigned[v] {
			out = append(out, v)
		}
	}
	return out
}

func removeVar(unassigned []int, v int) []int {
	out := make([]int, 0, len(unassigned)-1)
	for _, u := range unassigned {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}
