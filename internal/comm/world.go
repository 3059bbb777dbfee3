package comm

import (
	"fmt"
	"sync"
)

// World is the shared side of a fixed group of ranks. Create one per run
// with [NewWorld] and hand each worker its [Comm] via [World.Comm].
type World struct {
	size  int
	bar   *barrier
	cells []any // one publish slot per rank, valid only inside a collective
}

func NewWorld(size int) *World {
	if size < 1 {
		panic(fmt.Sprintf("comm: world size %d, must be at least 1", size))
	}
	return &World{
		size:  size,
		bar:   newBarrier(size),
		cells: make([]any, size),
	}
}

func (w *World) Size() int { return w.size }

// Comm returns the communicator handle for the given rank.
func (w *World) Comm(rank int) *Comm {
	if rank < 0 || rank >= w.size {
		panic(fmt.Sprintf("comm: rank %d outside [0, %d)", rank, w.size))
	}
	return &Comm{world: w, rank: rank}
}

// Comm is one rank's view of a [World]. A Comm is used by exactly one
// goroutine; all cross-rank traffic flows through collectives.
type Comm struct {
	world *World
	rank  int
}

func (c *Comm) Rank() int { return c.rank }
func (c *Comm) Size() int { return c.world.size }

// Barrier blocks until every rank in the world has called Barrier.
func (c *Comm) Barrier() { c.world.bar.await() }

// barrier is a reusable generation-counted rendezvous point.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int
	arrived int
	gen     uint64
}

func newBarrier(size int) *barrier {
	b := &barrier{size: size}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) await() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.arrived++
	if b.arrived == b.size {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		return
	}

	gen := b.gen
	for gen == b.gen {
		b.cond.Wait()
	}
}
