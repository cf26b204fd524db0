// Package ddcore defines the shared value types and client contracts for the
// branch-and-bound / multi-valued-decision-diagram (B&B-MDD) solver: the
// Decision and SubProblem records, and the five interfaces a client must
// implement to describe a problem (Problem, Relaxation, StateRanking,
// VariableHeuristic, WidthHeuristic).
//
// Nothing in this package builds a decision diagram or searches anything —
// see lvlath-bbmdd/mdd for the compiler and lvlath-bbmdd/bbsolver for the
// parallel search engine. ddcore is the vocabulary both of them share.
package ddcore
