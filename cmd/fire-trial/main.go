// Command fire-trial runs a single forest-fire trial, or aggregates several,
// and can record the single trial as an MJPEG video.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"forestfire/internal/cli"
	"forestfire/internal/forest"
	"forestfire/internal/montecarlo"
	"forestfire/internal/record"
	"forestfire/pkg/rng"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "fire-trial:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := gnuflag.NewFlagSet("fire-trial", gnuflag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Int64("seed", 1337, "random seed")
	startFlag := fs.String("start", "0,0", "ignition cell as row,col")
	trials := fs.Int("trials", 1, "number of trials; more than one prints aggregate statistics")
	recordPath := fs.String("record", "", "write the trial as an MJPEG AVI (single trial only)")
	fps := fs.Int("fps", 10, "video frames per second")
	scale := fs.Int("scale", 8, "video pixels per cell")
	verbose := fs.Bool("v", false, "debug logging")
	var overrides cli.KVList
	fs.Var(&overrides, "set", "lattice parameter in key=value form: n, density, neighbors, p_fire (repeatable)")
	if err := fs.Parse(true, args); err != nil {
		return err
	}

	logger := cli.NewLogger(stderr, *verbose)
	start, err := cli.ParseCell(*startFlag)
	if err != nil {
		return errors.Trace(err)
	}
	p := forest.FromMap(overrides.Map())
	if err := p.Validate(); err != nil {
		return errors.Trace(err)
	}
	if *recordPath != "" && *trials != 1 {
		return errors.NotValidf("-record with %d trials", *trials)
	}
	printParams(stdout, p, overrides.Map())

	src := rng.NewRNG(*seed)
	if *trials != 1 {
		stats, ok, err := montecarlo.RunMonteCarlo(p, start, *trials, src, montecarlo.WithLogger(logger))
		if err != nil {
			return errors.Trace(err)
		}
		if !ok {
			fmt.Fprintf(stdout, "\nNo valid trials: cell (%d,%d) never started as a tree in %d attempts.\n", start.I, start.J, *trials)
			return nil
		}
		printStats(stdout, stats)
		return nil
	}

	trial := func(observe montecarlo.Observer) (montecarlo.TrialResult, bool, error) {
		return montecarlo.RunTrialObserved(p, start, src, observe)
	}
	var res montecarlo.TrialResult
	var ok bool
	if *recordPath == "" {
		res, ok, err = trial(nil)
	} else {
		var frames int
		res, ok, frames, err = recordTrial(*recordPath, p.N, *scale, *fps, trial)
		if err == nil && ok {
			logger.Info("recorded trial", "path", *recordPath, "frames", frames)
		}
	}
	if err != nil {
		return errors.Trace(err)
	}
	if !ok {
		fmt.Fprintf(stdout, "\nInvalid trial: cell (%d,%d) is not a tree for seed %d.\n", start.I, start.J, *seed)
		return nil
	}
	printResult(stdout, res)
	return nil
}

// recordTrial runs trial with every lattice state written to an n×n video at
// path. A failed run leaves no file behind.
func recordTrial(path string, n, scale, fps int, trial func(montecarlo.Observer) (montecarlo.TrialResult, bool, error)) (montecarlo.TrialResult, bool, int, error) {
	rec, err := record.New(path, n, n, scale, fps)
	if err != nil {
		return montecarlo.TrialResult{}, false, 0, errors.Trace(err)
	}
	res, ok, err := trial(func(g *forest.Grid) error { return rec.AddFrame(g.Raw()) })
	if cerr := rec.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return montecarlo.TrialResult{}, false, 0, errors.Trace(err)
	}
	return res, ok, rec.Frames(), nil
}

func printParams(w io.Writer, p forest.Config, overrides map[string]string) {
	fmt.Fprintln(w, "Parameters:")
	fmt.Fprintf(w, "  n=%d\n", p.N)
	fmt.Fprintf(w, "  density=%.3f\n", p.Density)
	fmt.Fprintf(w, "  neighbors=%d\n", int(p.Topology))
	fmt.Fprintf(w, "  p_fire=%.3f\n", p.SpreadProbability)
	var unknown []string
	for k := range overrides {
		switch k {
		case "n", "density", "neighbors", "p_fire":
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		fmt.Fprintf(w, "  (ignored %s)\n", k)
	}
}

func printResult(w io.Writer, r montecarlo.TrialResult) {
	fmt.Fprintln(w, "\nTrial:")
	fmt.Fprintf(w, "  percolates=%t\n", r.Percolates)
	fmt.Fprintf(w, "  burned=%d (%.3f)\n", r.BurnedCount, r.BurnedFraction)
	fmt.Fprintf(w, "  extinction=%d\n", r.ExtinctionTime)
	fmt.Fprintf(w, "  frontier=%d\n", r.FrontierCount)
}

func printStats(w io.Writer, s montecarlo.Stats) {
	fmt.Fprintf(w, "\nAggregate over %d/%d valid trials:\n", s.TrialsUsed, s.TrialsRequested)
	fmt.Fprintf(w, "  theta=%.3f\n", s.Theta())
	row := func(name string, m montecarlo.MetricStats) {
		fmt.Fprintf(w, "  %-10s mean=%.3f var=%.3f sd=%.3f\n", name, m.Mean, m.Variance, math.Sqrt(m.Variance))
	}
	row("percolates", s.Percolates)
	row("burned", s.BurnedFraction)
	row("extinction", s.ExtinctionTime)
	row("frontier", s.FrontierCount)
}
