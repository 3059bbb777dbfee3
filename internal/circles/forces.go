package circles

import "math"

// ComputeForces accumulates pairwise repulsion displacements for every
// ordered pair (i, j) with i in [start, end) and j ranging over the whole
// ensemble. Two circles overlap when their center distance is smaller
// than the sum of their radii minus Epsilon; the overlap is resolved
// along the line joining the centers, or along a fixed diagonal when the
// centers coincide.
//
// The i-side impulse always lands on circle i. The mirror impulse lands
// on circle j only when j lies outside [start, end): the owner of an
// in-range j produces the identical value through its own ordered visit
// of (j, i), and reconciliation keeps owner-computed values only, so a
// second in-range write would count the pair twice.
//
// Returns the number of overlapping ordered pairs visited. Summed across
// all owners this is twice the number of unique overlapping pairs, since
// each unordered pair is seen once as (i, j) and once as (j, i).
func ComputeForces(cs []Circle, start, end int) int {
	overlaps := 0
	for i := start; i < end; i++ {
		for j := range cs {
			if j == i {
				continue
			}
			deltaX := cs[j].X - cs[i].X
			deltaY := cs[j].Y - cs[i].Y
			dist := math.Hypot(deltaX, deltaY)
			rsum := cs[i].R + cs[j].R
			if dist >= rsum-Epsilon {
				continue
			}
			overlaps++
			overlap := rsum - dist

			var overlapX, overlapY float64
			if dist < Epsilon {
				// Coincident centers: split the overlap equally along
				// a fixed diagonal so neither axis divides by zero.
				overlapX = overlap / math.Sqrt2
				overlapY = overlap / math.Sqrt2
			} else {
				overlapX = overlap / dist * deltaX
				overlapY = overlap / dist * deltaY
			}

			cs[i].DX -= overlapX / Damping
			cs[i].DY -= overlapY / Damping
			if j < start || j >= end {
				cs[j].DX += overlapX / Damping
				cs[j].DY += overlapY / Damping
			}
		}
	}
	return overlaps
}
