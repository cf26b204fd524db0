package ddcore

import "math"

// MaxInt and MinInt bound the saturating integer arithmetic used throughout
// the compiler and the engine (rough upper bounds, longest-path values,
// local bounds). They are the platform int extremes, matching math.MaxInt /
// math.MinInt.
const (
	MaxInt = math.MaxInt
	MinInt = math.MinInt
)

// Decision is a single (variable, value) assignment. Two decisions are equal
// iff both fields match — Decision is comparable and safe to use as a map
// key or inside a slice compared with reflect.DeepEqual / ==.
type Decision struct {
	// Var is the variable index, 0 <= Var < Problem.NbVars().
	Var int
	// Val is the value assigned to Var.
	Val int
}

// SubProblem is an immutable residual optimization problem rooted at state
// State, reachable from the original root via Path with objective value
// Value, and bounded above by UB.
//
// Invariants (enforced by the compiler when it builds one, not re-validated
// here — see §7 "client-contract violation" in the design notes):
//   - UB >= Value.
//   - The variables named in Path are pairwise distinct.
//   - Path holds decisions for a prefix of the variable-assignment order
//     that produced this subproblem from the original root.
type SubProblem[S comparable] struct {
	State S
	Value int
	UB    int
	Path  []Decision
}

// SaturatedAdd returns a+b clamped to [MinInt, MaxInt]. Overflow in either
// direction never panics or wraps: a positive overflow saturates to MaxInt,
// a negative overflow saturates to MinInt.
//
// The reference implementation this module was derived from compared both
// branches against MaxInt, so the negative-overflow clamp could never fire;
// this is the corrected version called for by the design notes.
func SaturatedAdd(a, b int) int {
	sum := a + b
	// Overflow detection via sign comparison: if a and b share a sign but
	// the result doesn't, the addition overflowed in that direction.
	if a > 0 && b > 0 && sum < 0 {
		return MaxInt
	}
	if a < 0 && b < 0 && sum >= 0 {
		return MinInt
	}

	return sum
}
