// Package bbsolver implements the parallel branch-and-bound engine that
// drives an mdd.Compiler over a shared frontier to an exact optimum. The
// engine itself never looks at a client's state type beyond ddcore's
// contracts: all domain knowledge lives in the Problem/Relaxation pair a
// caller supplies.
//
// The engine's locking discipline is grounded on lvlath/core.Graph's
// split-mutex model (core/types.go): one mutex protects the one shared
// mutable critical region (the frontier, the running counters, the best
// incumbent found so far), and every worker goroutine only ever touches
// that state while holding it.
package bbsolver
