// Package frames dumps per-iteration snapshots as gnuplot scripts, one
// file per frame, for assembling a movie of the relaxation.
package frames

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/sim"
)

// Writer emits circles-%05d.gp files into a directory. Frame 0 is the
// initial placement; frame k the state after iteration k. Plot ranges
// extend the field by 20% on each side so escaping circles stay visible.
type Writer struct {
	dir   string
	field circles.Field
	log   *zap.Logger
}

func NewWriter(dir string, field circles.Field, log *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{dir: dir, field: field, log: log}, nil
}

func (w *Writer) WriteFrame(index int, cs []circles.Circle) error {
	name := fmt.Sprintf("circles-%05d.gp", index)
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	marginX := w.field.Width() * 0.2
	marginY := w.field.Height() * 0.2

	out := bufio.NewWriter(f)
	fmt.Fprintf(out, "set term png notransparent large\n")
	fmt.Fprintf(out, "set output \"circles-%05d.png\"\n", index)
	fmt.Fprintf(out, "set xrange [%f:%f]\n", w.field.XMin-marginX, w.field.XMax+marginX)
	fmt.Fprintf(out, "set yrange [%f:%f]\n", w.field.YMin-marginY, w.field.YMax+marginY)
	fmt.Fprintf(out, "set size square\n")
	fmt.Fprintf(out, "plot '-' with circles notitle\n")
	for _, c := range cs {
		fmt.Fprintf(out, "%f %f %f\n", c.X, c.Y, c.R)
	}
	fmt.Fprintf(out, "e\n")
	return out.Flush()
}

// OnInit and OnIteration let a Writer plug into the runner as an
// observer. Dump failures are logged, not fatal: a movie is a debug
// artifact, losing a frame must not kill the run.
func (w *Writer) OnInit(ens []circles.Circle) {
	if err := w.WriteFrame(0, ens); err != nil {
		w.log.Error("frame dump failed", zap.Int("frame", 0), zap.Error(err))
	}
}

func (w *Writer) OnIteration(stats sim.IterationStats, ens []circles.Circle) {
	if err := w.WriteFrame(stats.Iteration, ens); err != nil {
		w.log.Error("frame dump failed", zap.Int("frame", stats.Iteration), zap.Error(err))
	}
}
