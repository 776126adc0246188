// Package montecarlo runs repeated forest-fire trials and aggregates their
// metrics into percolation statistics.
//
// Every entry point takes its randomness explicitly. The sequential runners
// consume one continuing stream: trial k draws after trial k-1, and density
// d+1 after density d, so a seed fixes the whole study. The parallel runners
// in parallel.go give each trial its own substream instead.
package montecarlo

import (
	"github.com/juju/errors"

	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

// Params are the grid parameters shared by every trial of a study. A density
// sweep overrides Density per point.
type Params = forest.Config

// TrialResult holds the metrics of one trial that ran to quiescence.
type TrialResult struct {
	Percolates     bool
	BurnedCount    int
	BurnedFraction float64
	ExtinctionTime int
	FrontierCount  int
}

// RunTrial builds a grid from src, ignites start and steps until the fire is
// out. ok is false when start was not a tree, in which case the trial is
// invalid and carries no result. A fire that dies on the first step is still
// a valid trial.
func RunTrial(p Params, start forest.Cell, src rng.Source) (res TrialResult, ok bool, err error) {
	return RunTrialObserved(p, start, src, nil)
}

// Observer sees the grid after ignition and after every step that had fire.
// Returning an error aborts the trial.
type Observer func(g *forest.Grid) error

// RunTrialObserved is RunTrial with a callback per frame. A nil observer is
// allowed. The observer does not change which random draws are made.
func RunTrialObserved(p Params, start forest.Cell, src rng.Source, observe Observer) (res TrialResult, ok bool, err error) {
	g, err := forest.New(p, src)
	if err != nil {
		return TrialResult{}, false, errors.Trace(err)
	}
	if !g.Ignite(start.I, start.J) {
		return TrialResult{}, false, nil
	}
	if observe == nil {
		g.Run()
		return resultOf(g), true, nil
	}
	if err := observe(g); err != nil {
		return TrialResult{}, false, errors.Annotate(err, "observe ignition")
	}
	for g.Step() {
		if err := observe(g); err != nil {
			return TrialResult{}, false, errors.Annotatef(err, "observe step %d", g.TimeToExtinction())
		}
	}
	return resultOf(g), true, nil
}

func resultOf(g *forest.Grid) TrialResult {
	return TrialResult{
		Percolates:     g.Percolates(),
		BurnedCount:    g.BurnedCount(),
		BurnedFraction: g.BurnedFraction(),
		ExtinctionTime: g.TimeToExtinction(),
		FrontierCount:  g.FrontierCount(),
	}
}
