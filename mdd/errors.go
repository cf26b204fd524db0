package mdd

import "errors"

// Validation errors. Compile fails fast on malformed CompilationInput rather
// than producing a silently meaningless diagram — these are programmer
// errors in the engine/client wiring, not search outcomes (an infeasible
// subproblem is not an error; see IsExact/BestValue).
var (
	// ErrInvalidMaxWidth indicates CompilationInput.MaxWidth < 1.
	ErrInvalidMaxWidth = errors.New("mdd: max width must be >= 1")

	// ErrInvalidMode indicates an unrecognized CompilationInput.Mode.
	ErrInvalidMode = errors.New("mdd: unknown compilation mode")
)
