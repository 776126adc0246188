package forest

import (
	"math"
	"strconv"

	"github.com/juju/errors"
)

// Config holds the construction parameters of a Grid.
type Config struct {
	// N is the side length of the square lattice.
	N int
	// Density is the probability that a site starts as a tree.
	Density float64
	// Topology selects 4- or 8-neighbour spread.
	Topology Topology
	// SpreadProbability is the chance that a burning site ignites a given
	// tree neighbour during one step.
	SpreadProbability float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		N:                 64,
		Density:           0.6,
		Topology:          VonNeumann4,
		SpreadProbability: 1.0,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are ignored; range checks are left to Validate so that a
// bad value is reported instead of silently replaced.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.N = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Density = parsed
		}
	}
	if v, ok := cfg["neighbors"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Topology = Topology(parsed)
		}
	}
	if v, ok := cfg["p_fire"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SpreadProbability = parsed
		}
	}
	return c
}

// Validate rejects configurations the propagation rule cannot honour.
func (c Config) Validate() error {
	if c.N <= 0 {
		return errors.NotValidf("grid size %d", c.N)
	}
	if !unitInterval(c.Density) {
		return errors.NotValidf("density %v", c.Density)
	}
	if !unitInterval(c.SpreadProbability) {
		return errors.NotValidf("spread probability %v", c.SpreadProbability)
	}
	if !c.Topology.Valid() {
		return errors.NotValidf("neighbour topology %d", int(c.Topology))
	}
	return nil
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
