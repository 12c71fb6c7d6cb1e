package metric

import "errors"

// Error taxonomy for metric construction and integration. Callers match
// categories with errors.Is; specific context is attached by wrapping.
var (
	// ErrValidation indicates malformed input shape, e.g. a state vector
	// that is not 8 components long.
	ErrValidation = errors.New("metric: invalid input shape")

	// ErrDomain indicates a physically inadmissible configuration:
	// non-positive mass, a start position at or inside the horizon, or a
	// polar angle on the coordinate singularity.
	ErrDomain = errors.New("metric: physically inadmissible configuration")

	// ErrNumerical indicates a non-finite state or derivative produced
	// during integration. It is a terminal failure of the run, distinct
	// from the ordinary end-of-window and horizon terminations.
	ErrNumerical = errors.New("metric: non-finite value during integration")
)
