package sim

import (
	"time"

	"github.com/san-kum/circlesim/internal/circles"
)

// Config describes one simulation run.
type Config struct {
	N          int
	Iterations int
	Workers    int
	Seed       int64
	Field      circles.Field
}

// IterationStats is what the reporting worker records for one iteration.
// Overlaps counts ordered overlapping visits summed over all workers,
// which is twice the number of unique overlapping pairs.
type IterationStats struct {
	Iteration int
	Overlaps  int
	Elapsed   time.Duration
}

// Result holds the reporting worker's view of a finished run.
type Result struct {
	Stats   []IterationStats
	Elapsed time.Duration
	Final   []circles.Circle
}

// TotalOverlaps sums the per-iteration overlap counts.
func (r *Result) TotalOverlaps() int {
	total := 0
	for _, s := range r.Stats {
		total += s.Overlaps
	}
	return total
}

// Observer receives per-iteration callbacks on the reporting worker.
// The ensemble slice is the worker's live copy: read it during the call,
// clone it to retain it.
type Observer interface {
	OnIteration(stats IterationStats, ens []circles.Circle)
}

// Initializer is an optional Observer extension invoked once with the
// freshly replicated ensemble, before the first iteration.
type Initializer interface {
	OnInit(ens []circles.Circle)
}
