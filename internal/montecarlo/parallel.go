package montecarlo

import (
	"runtime"

	"github.com/juju/errors"
	"golang.org/x/sync/errgroup"

	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

// RunMonteCarloParallel is the multi-core counterpart of RunMonteCarlo.
//
// Trial k draws from rng.NewStream(seed, k) rather than from one shared
// stream, and results are aggregated in trial order, so the outcome depends
// on (seed, trials) and never on workers or scheduling. It does not
// reproduce RunMonteCarlo's numbers for the same seed. workers <= 0 uses one
// worker per CPU.
func RunMonteCarloParallel(p Params, start forest.Cell, trials int, seed uint64, workers int, opts ...Option) (Stats, bool, error) {
	if err := validateRun(p, trials); err != nil {
		return Stats{}, false, err
	}
	o := buildOptions(opts)
	results, err := runParallel(p, start, trials, workers, func(k int) rng.Source {
		return rng.NewStream(seed, uint64(k))
	})
	if err != nil {
		return Stats{}, false, err
	}
	stats, ok := Aggregate(results, trials)
	logRun(o.logger, p, trials, stats, ok)
	return stats, ok, nil
}

// RunDensitySweepParallel sweeps densities like RunDensitySweep, running the
// trials of each density in parallel. Trial k at density index i uses
// substream i*trials+k of seed.
func RunDensitySweepParallel(p Params, densities []float64, start forest.Cell, trials int, seed uint64, workers int, opts ...Option) ([]CurvePoint, error) {
	o := buildOptions(opts)
	curve := make([]CurvePoint, 0, len(densities))
	for i, d := range densities {
		cfg := p
		cfg.Density = d
		if err := validateRun(cfg, trials); err != nil {
			return nil, errors.Annotatef(err, "density %v (index %d)", d, i)
		}
		base := uint64(i) * uint64(trials)
		results, err := runParallel(cfg, start, trials, workers, func(k int) rng.Source {
			return rng.NewStream(seed, base+uint64(k))
		})
		if err != nil {
			return nil, errors.Annotatef(err, "density %v (index %d)", d, i)
		}
		stats, ok := Aggregate(results, trials)
		logRun(o.logger, cfg, trials, stats, ok)
		curve = append(curve, pointOf(d, stats, ok))
	}
	return curve, nil
}

func runParallel(p Params, start forest.Cell, trials, workers int, stream func(k int) rng.Source) ([]TrialResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]TrialResult, trials)
	valid := make([]bool, trials)

	var g errgroup.Group
	g.SetLimit(workers)
	for k := 0; k < trials; k++ {
		g.Go(func() error {
			res, ok, err := RunTrial(p, start, stream(k))
			if err != nil {
				return errors.Annotatef(err, "trial %d", k)
			}
			out[k], valid[k] = res, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := out[:0]
	for k := range out {
		if valid[k] {
			results = append(results, out[k])
		}
	}
	return results, nil
}
