package comm

import "fmt"

// Every collective runs in two barrier phases: publish, then read. The
// trailing barrier keeps a fast rank from starting the next collective
// and overwriting a cell before a slow rank has read it.

// Broadcast returns root's value on every rank.
func Broadcast[T any](c *Comm, root int, v T) T {
	w := c.world
	if c.rank == root {
		w.cells[root] = v
	}
	c.Barrier()
	out := w.cells[root].(T)
	c.Barrier()
	return out
}

// BroadcastSlice copies root's buffer into every other rank's buffer.
// All buffers must have the same length; after the call each rank holds
// an independent copy of root's elements.
func BroadcastSlice[T any](c *Comm, root int, buf []T) {
	w := c.world
	if c.rank == root {
		w.cells[root] = buf
	}
	c.Barrier()
	if c.rank != root {
		src := w.cells[root].([]T)
		if len(src) != len(buf) {
			panic(fmt.Sprintf("comm: broadcast buffer length %d, root has %d", len(buf), len(src)))
		}
		copy(buf, src)
	}
	c.Barrier()
}

// ReduceSum sums every rank's contribution. The total is returned on
// root; all other ranks receive zero.
func ReduceSum(c *Comm, root, v int) int {
	w := c.world
	w.cells[c.rank] = v
	c.Barrier()
	total := 0
	if c.rank == root {
		for r := 0; r < w.size; r++ {
			total += w.cells[r].(int)
		}
	}
	c.Barrier()
	return total
}

type span[T any] struct {
	start, end int
	data       []T
}

// AllGatherSlice publishes buf[start:end] as this rank's owned segment
// and copies every other rank's owned segment into buf. Segments are
// sized per rank, so uneven partitions exchange correctly; they must
// form a disjoint cover of [0, len(buf)) across all ranks, which makes
// the concurrent copies race-free.
func AllGatherSlice[T any](c *Comm, buf []T, start, end int) {
	w := c.world
	if start < 0 || end < start || end > len(buf) {
		panic(fmt.Sprintf("comm: gather segment [%d, %d) outside buffer of length %d", start, end, len(buf)))
	}
	w.cells[c.rank] = span[T]{start: start, end: end, data: buf[start:end]}
	c.Barrier()
	for r := 0; r < w.size; r++ {
		if r == c.rank {
			continue
		}
		s := w.cells[r].(span[T])
		copy(buf[s.start:s.end], s.data)
	}
	c.Barrier()
}
