package montecarlo

import (
	"github.com/juju/errors"

	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

// CurvePoint is one sample of the θ(d) curve. Valid is false when no trial at
// this density had a tree at the start cell; Theta is then 0 and Stats is
// empty.
type CurvePoint struct {
	Density float64
	Theta   float64
	Valid   bool
	Stats   Stats
}

// RunDensitySweep runs RunMonteCarlo for each density in order, all on the
// continuing stream src, and returns exactly one point per density.
func RunDensitySweep(p Params, densities []float64, start forest.Cell, trials int, src rng.Source, opts ...Option) ([]CurvePoint, error) {
	o := buildOptions(opts)
	curve := make([]CurvePoint, 0, len(densities))
	for i, d := range densities {
		cfg := p
		cfg.Density = d
		stats, ok, err := RunMonteCarlo(cfg, start, trials, src, opts...)
		if err != nil {
			return nil, errors.Annotatef(err, "density %v (index %d)", d, i)
		}
		curve = append(curve, pointOf(d, stats, ok))
		o.logger.Debug("density point", "index", i, "density", d, "theta", curve[i].Theta, "valid", ok)
	}
	return curve, nil
}

func pointOf(d float64, stats Stats, ok bool) CurvePoint {
	if !ok {
		return CurvePoint{Density: d, Stats: stats}
	}
	return CurvePoint{Density: d, Theta: stats.Theta(), Valid: true, Stats: stats}
}
