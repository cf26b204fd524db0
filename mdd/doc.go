// Package mdd implements the layered multi-valued decision diagram (MDD)
// compiler at the heart of the solver: given a CompilationInput, it builds
// one layer at a time in Exact, Restricted, or Relaxed mode, tracks the
// longest-path value into every node, and — for relaxed compilations —
// propagates local bounds back through the last-exact-layer (LEL) cutset.
//
// The compiler is a single reusable struct, grounded on lvlath/tsp's bbEngine
// (tsp/bb.go): one engine type per worker, cleared and rebuilt on every
// Compile call rather than reallocated.
package mdd
