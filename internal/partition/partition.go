// Package partition maps worker ranks to contiguous index ranges.
package partition

import "fmt"

// Range returns the half-open index range [start, end) of [0, n) owned by
// the given rank. Ranges of consecutive ranks are contiguous and together
// cover [0, n) exactly; when n < size some ranges are empty.
//
// Arguments outside their domain are programming errors and panic.
func Range(rank, size, n int) (start, end int) {
	if size < 1 {
		panic(fmt.Sprintf("partition: worker count %d, must be at least 1", size))
	}
	if rank < 0 || rank >= size {
		panic(fmt.Sprintf("partition: rank %d outside [0, %d)", rank, size))
	}
	if n < 0 {
		panic(fmt.Sprintf("partition: negative ensemble size %d", n))
	}
	return rank * n / size, (rank + 1) * n / size
}

// Len returns the number of indices owned by rank.
func Len(rank, size, n int) int {
	start, end := Range(rank, size, n)
	return end - start
}
