package montecarlo

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

var origin = forest.Cell{I: 0, J: 0}

func params(n int, density, p float64) Params {
	return Params{N: n, Density: density, Topology: forest.VonNeumann4, SpreadProbability: p}
}

func TestRunTrialRejectsNonTreeStart(t *testing.T) {
	res, ok, err := RunTrial(params(8, 0, 1), origin, rng.NewRNG(1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, TrialResult{}, res)

	_, ok, err = RunTrial(params(8, 1, 1), forest.Cell{I: 8, J: 0}, rng.NewRNG(1))
	require.NoError(t, err)
	assert.False(t, ok, "out-of-bounds start is invalid")
}

func TestRunTrialFireThatDiesImmediatelyIsValid(t *testing.T) {
	res, ok, err := RunTrial(params(6, 1, 0), origin, rng.NewRNG(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TrialResult{
		Percolates:     false,
		BurnedCount:    1,
		BurnedFraction: 1.0 / 36,
		ExtinctionTime: 1,
		FrontierCount:  1,
	}, res)
}

func TestRunTrialFullBurn(t *testing.T) {
	const n = 4
	res, ok, err := RunTrial(params(n, 1, 1), origin, rng.NewRNG(3))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, res.Percolates)
	assert.Equal(t, n*n, res.BurnedCount)
	assert.Equal(t, 1.0, res.BurnedFraction)
	assert.Equal(t, 2*(n-1)+1, res.ExtinctionTime)
	assert.Equal(t, 0, res.FrontierCount)
}

func TestRunTrialObservedSeesEveryFrame(t *testing.T) {
	const n = 4
	var iterations []int
	var fires []int
	res, ok, err := RunTrialObserved(params(n, 1, 1), origin, rng.NewRNG(3), func(g *forest.Grid) error {
		iterations = append(iterations, g.TimeToExtinction())
		fires = append(fires, g.FireCount())
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, iterations)
	assert.Equal(t, 1, fires[0])
	assert.Equal(t, 0, fires[len(fires)-1])

	plain, _, err := RunTrial(params(n, 1, 1), origin, rng.NewRNG(3))
	require.NoError(t, err)
	assert.Equal(t, plain, res)
}

func TestRunTrialObservedMatchesRunTrial(t *testing.T) {
	p := params(16, 0.6, 0.7)
	a, b := rng.NewRNG(21), rng.NewRNG(21)
	for k := 0; k < 20; k++ {
		want, wantOK, err := RunTrial(p, origin, a)
		require.NoError(t, err)
		got, gotOK, err := RunTrialObserved(p, origin, b, func(*forest.Grid) error { return nil })
		require.NoError(t, err)
		require.Equal(t, wantOK, gotOK, "trial %d", k)
		require.Equal(t, want, got, "trial %d", k)
	}
}

func TestRunTrialObservedAbort(t *testing.T) {
	calls := 0
	_, ok, err := RunTrialObserved(params(4, 1, 1), origin, rng.NewRNG(3), func(*forest.Grid) error {
		calls++
		if calls == 3 {
			return errors.New("disk full")
		}
		return nil
	})
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "observe step 2")
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunTrialConfigError(t *testing.T) {
	_, _, err := RunTrial(params(0, 0.5, 1), origin, rng.NewRNG(1))
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestRunMonteCarloNoData(t *testing.T) {
	stats, ok, err := RunMonteCarlo(params(10, 0, 1), origin, 50, rng.NewRNG(4))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, stats.TrialsUsed)
	assert.Equal(t, 50, stats.TrialsRequested)
}

func TestRunMonteCarloValidates(t *testing.T) {
	_, _, err := RunMonteCarlo(params(10, 0.5, 1), origin, 0, rng.NewRNG(4))
	assert.True(t, errors.Is(err, errors.NotValid))

	_, _, err = RunMonteCarlo(params(10, 0.5, -1), origin, 5, rng.NewRNG(4))
	assert.True(t, errors.Is(err, errors.NotValid))

	_, _, err = RunMonteCarlo(params(10, 0.5, 1), origin, 5, nil)
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestRunMonteCarloCertainSpread(t *testing.T) {
	stats, ok, err := RunMonteCarlo(params(5, 1, 1), origin, 20, rng.NewRNG(4))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 20, stats.TrialsUsed)
	assert.Equal(t, MetricStats{Mean: 1, Variance: 0}, stats.Percolates)
	assert.Equal(t, MetricStats{Mean: 1, Variance: 0}, stats.BurnedFraction)
	assert.Equal(t, MetricStats{Mean: 9, Variance: 0}, stats.ExtinctionTime)
	assert.Equal(t, 1.0, stats.Theta())
}

func TestRunMonteCarloMatchesSequentialTrials(t *testing.T) {
	p := params(12, 0.55, 0.8)
	const trials = 150

	stats, ok, err := RunMonteCarlo(p, origin, trials, rng.NewRNG(99))
	require.NoError(t, err)
	require.True(t, ok)

	src := rng.NewRNG(99)
	var perc, burned []float64
	for k := 0; k < trials; k++ {
		res, ok, err := RunTrial(p, origin, src)
		require.NoError(t, err)
		if !ok {
			continue
		}
		v := 0.0
		if res.Percolates {
			v = 1
		}
		perc = append(perc, v)
		burned = append(burned, res.BurnedFraction)
	}

	require.Equal(t, len(perc), stats.TrialsUsed)
	assert.Less(t, stats.TrialsUsed, trials, "about half the start cells are empty")
	assert.Greater(t, stats.TrialsUsed, 0)

	mean, variance := popMeanVar(perc)
	assert.InDelta(t, mean, stats.Percolates.Mean, 1e-12)
	assert.InDelta(t, variance, stats.Percolates.Variance, 1e-12)
	mean, variance = popMeanVar(burned)
	assert.InDelta(t, mean, stats.BurnedFraction.Mean, 1e-12)
	assert.InDelta(t, variance, stats.BurnedFraction.Variance, 1e-12)
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	p := Params{N: 16, Density: 0.6, Topology: forest.Moore8, SpreadProbability: 0.4}
	a, okA, errA := RunMonteCarlo(p, forest.Cell{I: 3, J: 5}, 80, rng.NewRNG(7))
	b, okB, errB := RunMonteCarlo(p, forest.Cell{I: 3, J: 5}, 80, rng.NewRNG(7))
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestAggregatePopulationVariance(t *testing.T) {
	results := []TrialResult{
		{Percolates: true, BurnedFraction: 0.2, ExtinctionTime: 2, FrontierCount: 1},
		{Percolates: false, BurnedFraction: 0.4, ExtinctionTime: 4, FrontierCount: 3},
	}
	stats, ok := Aggregate(results, 3)
	require.True(t, ok)
	assert.Equal(t, 2, stats.TrialsUsed)
	assert.Equal(t, 3, stats.TrialsRequested)
	assert.InDelta(t, 0.5, stats.Percolates.Mean, 1e-12)
	assert.InDelta(t, 0.25, stats.Percolates.Variance, 1e-12)
	assert.InDelta(t, 0.3, stats.BurnedFraction.Mean, 1e-12)
	assert.InDelta(t, 0.01, stats.BurnedFraction.Variance, 1e-12)
	assert.InDelta(t, 1.0, stats.ExtinctionTime.Variance, 1e-12)
	assert.InDelta(t, 2.0, stats.FrontierCount.Mean, 1e-12)

	_, ok = Aggregate(nil, 4)
	assert.False(t, ok)
}

func TestRunMonteCarloLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, ok, err := RunMonteCarlo(params(5, 1, 1), origin, 3, rng.NewRNG(1), WithLogger(logger))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, buf.String(), "monte carlo complete")
	assert.Contains(t, buf.String(), "used=3")
}

func popMeanVar(x []float64) (float64, float64) {
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return mean, ss / float64(len(x))
}

func TestMetricStatsFinite(t *testing.T) {
	stats, ok, err := RunMonteCarlo(params(10, 0.7, 0.6), origin, 40, rng.NewRNG(12))
	require.NoError(t, err)
	require.True(t, ok)
	for _, m := range []MetricStats{stats.Percolates, stats.BurnedFraction, stats.ExtinctionTime, stats.FrontierCount} {
		assert.False(t, math.IsNaN(m.Mean))
		assert.GreaterOrEqual(t, m.Variance, 0.0)
	}
}
