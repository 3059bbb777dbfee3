package circles

import (
	"math"
	"testing"
)

func TestComputeForcesKnownPair(t *testing.T) {
	// Rsum=20, dist=15, overlap=5. Each circle is displaced by
	// overlap/Damping along x, in opposite directions.
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 15, Y: 0, R: 10},
	}

	overlaps := ComputeForces(cs, 0, len(cs))
	if overlaps != 2 {
		t.Errorf("expected 2 ordered overlaps, got %d", overlaps)
	}

	want := 5.0 / Damping
	if math.Abs(cs[0].DX+want) > 1e-12 {
		t.Errorf("expected dx0 = %.6f, got %.6f", -want, cs[0].DX)
	}
	if math.Abs(cs[1].DX-want) > 1e-12 {
		t.Errorf("expected dx1 = %.6f, got %.6f", want, cs[1].DX)
	}
	if cs[0].DY != 0 || cs[1].DY != 0 {
		t.Errorf("expected zero y displacement, got %f, %f", cs[0].DY, cs[1].DY)
	}

	Move(cs)
	if math.Abs(cs[0].X+want) > 1e-12 {
		t.Errorf("expected x0 = %.6f after move, got %.6f", -want, cs[0].X)
	}
	if math.Abs(cs[1].X-(15+want)) > 1e-12 {
		t.Errorf("expected x1 = %.6f after move, got %.6f", 15+want, cs[1].X)
	}
}

func TestComputeForcesOverlapCountDoubling(t *testing.T) {
	// One overlapping pair among otherwise disjoint circles. The counter
	// sees the pair once from each side.
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 15, Y: 0, R: 10},
		{X: 500, Y: 500, R: 10},
		{X: 900, Y: 100, R: 10},
	}

	overlaps := ComputeForces(cs, 0, len(cs))
	if overlaps != 2 {
		t.Errorf("expected count 2 for one unique pair, got %d", overlaps)
	}
}

func TestComputeForcesCoincidentCenters(t *testing.T) {
	cs := []Circle{
		{X: 100, Y: 100, R: 50},
		{X: 100, Y: 100, R: 50},
	}

	overlaps := ComputeForces(cs, 0, len(cs))
	if overlaps != 2 {
		t.Errorf("expected 2 ordered overlaps, got %d", overlaps)
	}

	want := 100.0 / (math.Sqrt2 * Damping)
	for i := range cs {
		if math.IsNaN(cs[i].DX) || math.IsNaN(cs[i].DY) {
			t.Fatalf("circle %d: displacement is NaN", i)
		}
		if math.Abs(cs[i].DX+want) > 1e-9 {
			t.Errorf("circle %d: expected |dx| = %.6f, got %.6f", i, want, cs[i].DX)
		}
		if math.Abs(cs[i].DY+want) > 1e-9 {
			t.Errorf("circle %d: expected |dy| = %.6f, got %.6f", i, want, cs[i].DY)
		}
	}
}

func TestComputeForcesNoOverlapIsStable(t *testing.T) {
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 100, Y: 0, R: 10},
		{X: 0, Y: 100, R: 10},
	}
	before := Clone(cs)

	overlaps := ComputeForces(cs, 0, len(cs))
	if overlaps != 0 {
		t.Errorf("expected no overlaps, got %d", overlaps)
	}
	for i := range cs {
		if cs[i].DX != 0 || cs[i].DY != 0 {
			t.Errorf("circle %d: expected zero displacement, got (%f, %f)", i, cs[i].DX, cs[i].DY)
		}
	}

	Move(cs)
	for i := range cs {
		if cs[i].X != before[i].X || cs[i].Y != before[i].Y {
			t.Errorf("circle %d: position changed without overlap", i)
		}
	}
}

func TestComputeForcesTangentPairWithinTolerance(t *testing.T) {
	// dist == Rsum: touching, not overlapping.
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 20, Y: 0, R: 10},
	}
	if overlaps := ComputeForces(cs, 0, len(cs)); overlaps != 0 {
		t.Errorf("tangent circles must not count as overlapping, got %d", overlaps)
	}
}

func TestComputeForcesEmptyRange(t *testing.T) {
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 5, Y: 0, R: 10},
	}
	if overlaps := ComputeForces(cs, 1, 1); overlaps != 0 {
		t.Errorf("empty range must be a no-op, got %d overlaps", overlaps)
	}
	if cs[0].DX != 0 || cs[1].DX != 0 {
		t.Error("empty range must not touch displacements")
	}
}

func TestComputeForcesMirrorImpulseOutsideRange(t *testing.T) {
	// Owner of circle 0 pushes its out-of-range neighbor too; the value is
	// scratch that reconciliation overwrites, but it must carry the mirror
	// of the i-side impulse.
	cs := []Circle{
		{X: 0, Y: 0, R: 10},
		{X: 15, Y: 0, R: 10},
	}

	overlaps := ComputeForces(cs, 0, 1)
	if overlaps != 1 {
		t.Errorf("expected 1 ordered overlap from the owned side, got %d", overlaps)
	}
	if math.Abs(cs[0].DX+5.0/Damping) > 1e-12 {
		t.Errorf("owned circle: expected dx = %.6f, got %.6f", -5.0/Damping, cs[0].DX)
	}
	if math.Abs(cs[1].DX-5.0/Damping) > 1e-12 {
		t.Errorf("out-of-range circle: expected mirror dx = %.6f, got %.6f", 5.0/Damping, cs[1].DX)
	}
}
