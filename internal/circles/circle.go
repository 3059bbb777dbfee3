package circles

import "math/rand"

// Kernel constants. Epsilon guards distance comparisons against
// floating-point noise near zero separation; Damping scales down the
// repulsion impulse so circles do not overshoot each other.
const (
	Epsilon = 1e-5
	Damping = 1.5
)

// Field is the rectangular region circles are placed in, together with
// the radius range they are drawn from.
type Field struct {
	XMin, XMax float64
	YMin, YMax float64
	RMin, RMax float64
}

func DefaultField() Field {
	return Field{
		XMin: 0, XMax: 1000,
		YMin: 0, YMax: 1000,
		RMin: 10, RMax: 100,
	}
}

func (f Field) Width() float64  { return f.XMax - f.XMin }
func (f Field) Height() float64 { return f.YMax - f.YMin }

// Circle is a single record of the ensemble. X and Y are the center,
// R the radius (fixed after creation), DX and DY the displacement
// accumulated during the current iteration.
type Circle struct {
	X, Y   float64
	R      float64
	DX, DY float64
}

// NewRandom creates n circles drawn independently and uniformly from f.
// It is the single source of randomness for a run: exactly one worker
// may call it, everyone else receives a copy.
func NewRandom(n int, f Field, rng *rand.Rand) []Circle {
	cs := make([]Circle, n)
	for i := range cs {
		cs[i].X = randab(rng, f.XMin, f.XMax)
		cs[i].Y = randab(rng, f.YMin, f.YMax)
		cs[i].R = randab(rng, f.RMin, f.RMax)
	}
	return cs
}

func randab(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// ResetDisplacements zeroes DX and DY for every circle. Must run at the
// start of each iteration, before any force accumulation.
func ResetDisplacements(cs []Circle) {
	for i := range cs {
		cs[i].DX = 0
		cs[i].DY = 0
	}
}

// Move applies the accumulated displacements to the positions.
func Move(cs []Circle) {
	for i := range cs {
		cs[i].X += cs[i].DX
		cs[i].Y += cs[i].DY
	}
}

func Clone(cs []Circle) []Circle {
	c := make([]Circle, len(cs))
	copy(c, cs)
	return c
}
