package sim

import "errors"

// Configuration errors, reported before any worker starts.
var (
	ErrNegativeSize      = errors.New("sim: ensemble size must be non-negative")
	ErrInvalidIterations = errors.New("sim: iteration count must be non-negative")
	ErrInvalidWorkers    = errors.New("sim: worker count must be at least 1")
)
