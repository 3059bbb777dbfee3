package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/comm"
	"github.com/san-kum/circlesim/internal/partition"
)

// Runner drives one simulation run: a fixed set of workers, each owning
// a contiguous slice of the ensemble, advancing in lock-step through
// reset, force computation, reconciliation, integration and position
// re-broadcast.
type Runner struct {
	cfg       Config
	out       io.Writer
	log       *zap.Logger
	observers []Observer
}

func New(cfg Config) *Runner {
	return &Runner{cfg: cfg, log: zap.NewNop()}
}

// SetOutput directs the per-iteration report lines. Nil (the default)
// silences them.
func (r *Runner) SetOutput(w io.Writer) { r.out = w }

func (r *Runner) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) validate() error {
	if r.cfg.N < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeSize, r.cfg.N)
	}
	if r.cfg.Iterations < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, r.cfg.Iterations)
	}
	if r.cfg.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, r.cfg.Workers)
	}
	return nil
}

// Run executes the configured number of iterations and returns the
// reporting worker's result. Cancellation is checked at iteration
// boundaries only and reaches every worker through a collective, so the
// group always leaves the loop at the same iteration.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	r.log.Info("starting run",
		zap.Int("circles", r.cfg.N),
		zap.Int("iterations", r.cfg.Iterations),
		zap.Int("workers", r.cfg.Workers),
		zap.Int64("seed", r.cfg.Seed),
	)

	world := comm.NewWorld(r.cfg.Workers)
	results := make([]*Result, r.cfg.Workers)
	errs := make([]error, r.cfg.Workers)

	var wg sync.WaitGroup
	for rank := 0; rank < r.cfg.Workers; rank++ {
		wg.Add(1)
		go func(c *comm.Comm) {
			defer wg.Done()
			results[c.Rank()], errs[c.Rank()] = r.worker(ctx, c)
		}(world.Comm(rank))
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results[0], nil
}

const root = 0 // reporting worker

func (r *Runner) worker(ctx context.Context, c *comm.Comm) (*Result, error) {
	rank := c.Rank()

	// Exactly one worker generates circles; everyone else receives the
	// replica through the one-time broadcast.
	var ens []circles.Circle
	if rank == root {
		rng := rand.New(rand.NewSource(r.cfg.Seed))
		ens = circles.NewRandom(r.cfg.N, r.cfg.Field, rng)
	} else {
		ens = make([]circles.Circle, r.cfg.N)
	}
	comm.BroadcastSlice(c, root, ens)

	start, end := partition.Range(rank, c.Size(), r.cfg.N)

	var res *Result
	if rank == root {
		res = &Result{Stats: make([]IterationStats, 0, r.cfg.Iterations)}
		for _, o := range r.observers {
			if init, ok := o.(Initializer); ok {
				init.OnInit(ens)
			}
		}
	}

	runStart := time.Now()
	for it := 0; it < r.cfg.Iterations; it++ {
		stop := rank == root && ctx.Err() != nil
		if comm.Broadcast(c, root, stop) {
			if rank == root {
				r.log.Warn("run canceled", zap.Int("completed_iterations", it))
				return nil, ctx.Err()
			}
			return nil, nil
		}

		iterStart := time.Now()

		circles.ResetDisplacements(ens)
		local := circles.ComputeForces(ens, start, end)
		total := comm.ReduceSum(c, root, local)
		comm.AllGatherSlice(c, ens, start, end)
		circles.Move(ens)
		comm.BroadcastSlice(c, root, ens)

		if rank == root {
			stats := IterationStats{
				Iteration: it + 1,
				Overlaps:  total,
				Elapsed:   time.Since(iterStart),
			}
			res.Stats = append(res.Stats, stats)
			if r.out != nil {
				fmt.Fprintf(r.out, "Iteration %d of %d, %d overlaps (%f s)\n",
					stats.Iteration, r.cfg.Iterations, stats.Overlaps, stats.Elapsed.Seconds())
			}
			for _, o := range r.observers {
				o.OnIteration(stats, ens)
			}
		}
	}

	if rank != root {
		return nil, nil
	}

	res.Elapsed = time.Since(runStart)
	res.Final = ens
	if r.out != nil {
		fmt.Fprintf(r.out, "Elapsed time: %f\n", res.Elapsed.Seconds())
	}
	r.log.Info("run finished",
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("total_overlaps", res.TotalOverlaps()),
	)
	return res, nil
}
