// Command theta-sweep estimates the percolation probability θ(d) across a
// range of tree densities.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"forestfire/internal/cli"
	"forestfire/internal/forest"
	"forestfire/internal/montecarlo"
	"forestfire/internal/plot"
	"forestfire/pkg/rng"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "theta-sweep:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := gnuflag.NewFlagSet("theta-sweep", gnuflag.ContinueOnError)
	fs.SetOutput(stderr)
	def := forest.DefaultConfig()
	n := fs.Int("n", def.N, "lattice side length")
	neighbors := fs.Int("neighbors", int(def.Topology), "neighbourhood: 4 or 8")
	pFire := fs.Float64("p", def.SpreadProbability, "per-step spread probability")
	startFlag := fs.String("start", "0,0", "ignition cell as row,col")
	densFlag := fs.String("densities", "0.3:0.8:0.05", "densities as a list (a,b,c) or range (lo:hi:step)")
	trials := fs.Int("trials", 200, "trials per density")
	seed := fs.Int64("seed", 1, "random seed")
	workers := fs.Int("workers", 1, "1 runs one sequential stream; otherwise trials run in parallel on per-trial streams (<=0 uses every CPU)")
	pngPath := fs.String("png", "", "write the θ(d) curve to this PNG file")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(true, args); err != nil {
		return err
	}

	logger := cli.NewLogger(stderr, *verbose)
	start, err := cli.ParseCell(*startFlag)
	if err != nil {
		return errors.Trace(err)
	}
	densities, err := cli.ParseDensities(*densFlag)
	if err != nil {
		return errors.Trace(err)
	}
	p := montecarlo.Params{
		N:                 *n,
		Density:           densities[0],
		Topology:          forest.Topology(*neighbors),
		SpreadProbability: *pFire,
	}

	fmt.Fprintf(stdout, "Sweeping %d densities (n=%d, neighbors=%d, p=%.2f, start=%d,%d, %d trials, seed %d)\n",
		len(densities), p.N, int(p.Topology), p.SpreadProbability, start.I, start.J, *trials, *seed)

	began := time.Now()
	var points []montecarlo.CurvePoint
	if *workers == 1 {
		points, err = montecarlo.RunDensitySweep(p, densities, start, *trials, rng.NewRNG(*seed), montecarlo.WithLogger(logger))
	} else {
		points, err = montecarlo.RunDensitySweepParallel(p, densities, start, *trials, uint64(*seed), *workers, montecarlo.WithLogger(logger))
	}
	if err != nil {
		return errors.Trace(err)
	}
	printTable(stdout, points)
	fmt.Fprintf(stdout, "\nElapsed %s\n", time.Since(began).Round(time.Millisecond))

	if *pngPath != "" {
		if err := writePNG(*pngPath, points, p, start); err != nil {
			return errors.Trace(err)
		}
		logger.Info("wrote chart", "path", *pngPath)
	}
	return nil
}

func printTable(w io.Writer, points []montecarlo.CurvePoint) {
	fmt.Fprintf(w, "\n%8s %8s %9s %18s %18s %18s\n", "density", "theta", "trials", "burned", "extinction", "frontier")
	for _, pt := range points {
		if !pt.Valid {
			fmt.Fprintf(w, "%8.3f %8s %4d/%-4d %18s %18s %18s\n", pt.Density, "--", 0, pt.Stats.TrialsRequested, "no data", "", "")
			continue
		}
		s := pt.Stats
		fmt.Fprintf(w, "%8.3f %8.3f %4d/%-4d %18s %18s %18s\n",
			pt.Density, pt.Theta, s.TrialsUsed, s.TrialsRequested,
			meanSD(s.BurnedFraction, 3), meanSD(s.ExtinctionTime, 1), meanSD(s.FrontierCount, 1))
	}
}

func meanSD(m montecarlo.MetricStats, prec int) string {
	return fmt.Sprintf("%.*f ± %.*f", prec, m.Mean, prec, math.Sqrt(m.Variance))
}

func writePNG(path string, points []montecarlo.CurvePoint, p montecarlo.Params, start forest.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "create %s", path)
	}
	title := fmt.Sprintf("θ(d), n=%d, %d-neighbour, p=%.2f, start (%d,%d)", p.N, int(p.Topology), p.SpreadProbability, start.I, start.J)
	if err := plot.ThetaCurve(f, points, plot.Options{Title: title}); err != nil {
		f.Close()
		return errors.Trace(err)
	}
	return errors.Trace(f.Close())
}
