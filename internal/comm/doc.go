// Package comm provides collective operations for a fixed set of
// cooperating workers running the same program over disjoint data.
//
// A [World] holds the shared state of all ranks; each worker obtains its
// [Comm] handle and advances through the run in lock-step by issuing the
// same sequence of collectives. Every collective is a blocking barrier:
// a rank that issues one cannot proceed until all ranks have reached the
// matching call. There is no partial participation: a rank that never
// arrives hangs the whole world, which is the intended failure mode.
//
// Collectives are the only legal path for cross-rank visibility. Ranks
// must never read each other's working state directly.
package comm
