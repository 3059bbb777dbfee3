package sim_test

import (
	"bytes"
	"context"
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/sim"
)

type recordingObserver struct {
	inits      int
	iterations []sim.IterationStats
	lastLen    int
}

func (r *recordingObserver) OnInit(ens []circles.Circle) {
	r.inits++
	r.lastLen = len(ens)
}

func (r *recordingObserver) OnIteration(stats sim.IterationStats, ens []circles.Circle) {
	r.iterations = append(r.iterations, stats)
	r.lastLen = len(ens)
}

var _ = Describe("Runner", func() {
	newConfig := func(workers int) sim.Config {
		return sim.Config{
			N:          60,
			Iterations: 5,
			Workers:    workers,
			Seed:       42,
			Field:      circles.DefaultField(),
		}
	}

	It("produces identical results for any worker count", func() {
		var base *sim.Result
		for _, workers := range []int{1, 2, 5} {
			res, err := sim.New(newConfig(workers)).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Stats).To(HaveLen(5))

			if base == nil {
				base = res
				continue
			}
			for i := range res.Stats {
				Expect(res.Stats[i].Overlaps).To(Equal(base.Stats[i].Overlaps),
					fmt.Sprintf("overlap count diverged at iteration %d with %d workers", i+1, workers))
			}
			Expect(res.Final).To(Equal(base.Final),
				fmt.Sprintf("final ensemble diverged with %d workers", workers))
		}
	})

	It("relaxes a crowded ensemble toward fewer overlaps", func() {
		cfg := newConfig(4)
		cfg.Iterations = 30
		res, err := sim.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		first := res.Stats[0].Overlaps
		last := res.Stats[len(res.Stats)-1].Overlaps
		Expect(first).To(BeNumerically(">", 0))
		Expect(last).To(BeNumerically("<", first))
	})

	It("keeps radii fixed and positions finite", func() {
		res, err := sim.New(newConfig(3)).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		f := circles.DefaultField()
		for _, c := range res.Final {
			Expect(c.R).To(BeNumerically(">=", f.RMin))
			Expect(c.R).To(BeNumerically("<=", f.RMax))
			Expect(math.IsNaN(c.X) || math.IsInf(c.X, 0)).To(BeFalse())
			Expect(math.IsNaN(c.Y) || math.IsInf(c.Y, 0)).To(BeFalse())
		}
	})

	It("handles more workers than circles", func() {
		cfg := newConfig(16)
		cfg.N = 3
		res, err := sim.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Stats).To(HaveLen(cfg.Iterations))
		Expect(res.Final).To(HaveLen(3))
	})

	It("handles an empty ensemble", func() {
		cfg := newConfig(4)
		cfg.N = 0
		res, err := sim.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		for _, s := range res.Stats {
			Expect(s.Overlaps).To(BeZero())
		}
	})

	It("emits one report line per iteration plus a summary", func() {
		var buf bytes.Buffer
		r := sim.New(newConfig(2))
		r.SetOutput(&buf)
		_, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		lines := bytes.Count(buf.Bytes(), []byte("\n"))
		Expect(lines).To(Equal(5 + 1))
		Expect(buf.String()).To(MatchRegexp(`Iteration 1 of 5, \d+ overlaps \([0-9.]+ s\)`))
		Expect(buf.String()).To(MatchRegexp(`Elapsed time: [0-9.]+`))
	})

	It("notifies observers once per iteration and once at init", func() {
		obs := &recordingObserver{}
		r := sim.New(newConfig(2))
		r.AddObserver(obs)
		_, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.inits).To(Equal(1))
		Expect(obs.iterations).To(HaveLen(5))
		Expect(obs.lastLen).To(Equal(60))
	})

	It("stops at the first iteration boundary when canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := sim.New(newConfig(3)).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).To(BeNil())
	})

	DescribeTable("rejects invalid configuration",
		func(mutate func(*sim.Config), want error) {
			cfg := newConfig(2)
			mutate(&cfg)
			_, err := sim.New(cfg).Run(context.Background())
			Expect(err).To(MatchError(want))
		},
		Entry("negative ensemble size", func(c *sim.Config) { c.N = -1 }, sim.ErrNegativeSize),
		Entry("negative iterations", func(c *sim.Config) { c.Iterations = -1 }, sim.ErrInvalidIterations),
		Entry("zero workers", func(c *sim.Config) { c.Workers = 0 }, sim.ErrInvalidWorkers),
	)
})
