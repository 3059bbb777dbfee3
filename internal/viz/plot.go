package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/circlesim/internal/storage"
)

// OverlapsPlot graphs the overlap count over iterations.
func OverlapsPlot(recs []storage.IterationRecord, width, height int) string {
	data := make([]float64, len(recs))
	for i, r := range recs {
		data[i] = float64(r.Overlaps)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("overlaps per iteration"),
	)
}

// TimesPlot graphs per-iteration wall time in milliseconds.
func TimesPlot(recs []storage.IterationRecord, width, height int) string {
	data := make([]float64, len(recs))
	for i, r := range recs {
		data[i] = r.ElapsedSec * 1000
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("iteration time (ms)"),
	)
}
