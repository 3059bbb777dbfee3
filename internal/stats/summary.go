// Package stats condenses a finished run into summary figures.
package stats

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/circlesim/internal/sim"
)

type Summary struct {
	Iterations    int
	TotalElapsed  time.Duration
	MeanIterSec   float64
	StdDevIterSec float64
	MinIterSec    float64
	MaxIterSec    float64
	FirstOverlaps int
	FinalOverlaps int
	MinOverlaps   int
	MaxOverlaps   int
}

func Summarize(res *sim.Result) Summary {
	s := Summary{
		Iterations:   len(res.Stats),
		TotalElapsed: res.Elapsed,
	}
	if len(res.Stats) == 0 {
		return s
	}

	times := make([]float64, len(res.Stats))
	for i, it := range res.Stats {
		times[i] = it.Elapsed.Seconds()
	}
	s.MeanIterSec = stat.Mean(times, nil)
	if len(times) > 1 {
		s.StdDevIterSec = stat.StdDev(times, nil)
	}
	s.MinIterSec = floats.Min(times)
	s.MaxIterSec = floats.Max(times)

	s.FirstOverlaps = res.Stats[0].Overlaps
	s.FinalOverlaps = res.Stats[len(res.Stats)-1].Overlaps
	s.MinOverlaps = s.FirstOverlaps
	s.MaxOverlaps = s.FirstOverlaps
	for _, it := range res.Stats[1:] {
		if it.Overlaps < s.MinOverlaps {
			s.MinOverlaps = it.Overlaps
		}
		if it.Overlaps > s.MaxOverlaps {
			s.MaxOverlaps = it.Overlaps
		}
	}
	return s
}
