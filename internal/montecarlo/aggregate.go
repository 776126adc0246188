package montecarlo

import (
	"log/slog"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/stat"

	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

// MetricStats is the population mean and variance (divide by N) of one
// metric over the valid trials.
type MetricStats struct {
	Mean     float64
	Variance float64
}

// Stats aggregates the valid trials of one Monte Carlo run.
type Stats struct {
	TrialsUsed      int
	TrialsRequested int

	Percolates     MetricStats
	BurnedFraction MetricStats
	ExtinctionTime MetricStats
	FrontierCount  MetricStats
}

// Theta is the estimated percolation probability.
func (s Stats) Theta() float64 { return s.Percolates.Mean }

// Option customises a Monte Carlo run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes the runner's debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RunMonteCarlo runs trials sequential trials on the continuing stream src
// and aggregates the valid ones. ok is false when no trial was valid, which
// callers must not read as a measured zero.
func RunMonteCarlo(p Params, start forest.Cell, trials int, src rng.Source, opts ...Option) (Stats, bool, error) {
	if err := validateRun(p, trials); err != nil {
		return Stats{}, false, err
	}
	if src == nil {
		return Stats{}, false, errors.NotValidf("nil random source")
	}
	o := buildOptions(opts)

	results := make([]TrialResult, 0, trials)
	for k := 0; k < trials; k++ {
		res, ok, err := RunTrial(p, start, src)
		if err != nil {
			return Stats{}, false, errors.Annotatef(err, "trial %d", k)
		}
		if ok {
			results = append(results, res)
		}
	}

	stats, ok := Aggregate(results, trials)
	logRun(o.logger, p, trials, stats, ok)
	return stats, ok, nil
}

// Aggregate computes population statistics over results. requested is the
// number of trials attempted, including invalid ones. ok is false when
// results is empty.
func Aggregate(results []TrialResult, requested int) (Stats, bool) {
	if len(results) == 0 {
		return Stats{TrialsRequested: requested}, false
	}
	perc := make([]float64, len(results))
	burned := make([]float64, len(results))
	times := make([]float64, len(results))
	frontier := make([]float64, len(results))
	for i, r := range results {
		if r.Percolates {
			perc[i] = 1
		}
		burned[i] = r.BurnedFraction
		times[i] = float64(r.ExtinctionTime)
		frontier[i] = float64(r.FrontierCount)
	}
	return Stats{
		TrialsUsed:      len(results),
		TrialsRequested: requested,
		Percolates:      popStats(perc),
		BurnedFraction:  popStats(burned),
		ExtinctionTime:  popStats(times),
		FrontierCount:   popStats(frontier),
	}, true
}

func popStats(x []float64) MetricStats {
	mean, variance := stat.PopMeanVariance(x, nil)
	return MetricStats{Mean: mean, Variance: variance}
}

func validateRun(p Params, trials int) error {
	if err := p.Validate(); err != nil {
		return errors.Trace(err)
	}
	if trials <= 0 {
		return errors.NotValidf("trial count %d", trials)
	}
	return nil
}

func logRun(l *slog.Logger, p Params, trials int, stats Stats, ok bool) {
	if !ok {
		l.Debug("monte carlo produced no valid trial",
			"density", p.Density, "trials", trials)
		return
	}
	l.Debug("monte carlo complete",
		"density", p.Density,
		"trials", trials,
		"used", stats.TrialsUsed,
		"theta", stats.Theta(),
		"burned_mean", stats.BurnedFraction.Mean)
}
