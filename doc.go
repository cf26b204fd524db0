// Package lvlathbbmdd is the module root for a generic, parallel, exact
// optimization solver for discrete dynamic-programming problems based on
// branch-and-bound with multi-valued decision diagrams (B&B-MDD).
//
// A client formulates its problem as a labeled transition system over a
// fixed set of integer variables (ddcore.Problem), supplies a relaxation
// operator that over-approximates sets of states into one merged state
// (ddcore.Relaxation), and a handful of ordering heuristics. The solver
// (bbsolver.Solver) drives parallel workers, each compiling layered
// decision diagrams (mdd.Compiler) over a shared priority frontier
// (frontier.Frontier), to the problem's exact optimum.
//
//   - ddcore    — shared value types and the client-facing contracts.
//   - frontier  — the open-subproblem priority queue.
//   - mdd       — the per-worker decision-diagram compiler.
//   - bbsolver  — the parallel branch-and-bound engine.
//   - metrics   — optional Prometheus instrumentation.
//   - examples/knapsack — a worked 0/1 knapsack client, outside the core.
package lvlathbbmdd
