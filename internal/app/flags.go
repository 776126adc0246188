package app

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"forestfire/internal/forest"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	N         int
	Density   float64
	Neighbors int
	PFire     float64
	Seed      int64
	Scale     int
	TPS       int
	FireTPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := forest.DefaultConfig()
	return &Config{
		N:         def.N,
		Density:   def.Density,
		Neighbors: int(def.Topology),
		PFire:     def.SpreadProbability,
		Seed:      42,
		Scale:     8,
		TPS:       60,
		FireTPS:   10,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *gnuflag.FlagSet) {
	fs.IntVar(&c.N, "n", c.N, "lattice side length")
	fs.Float64Var(&c.Density, "density", c.Density, "initial tree density in [0,1]")
	fs.IntVar(&c.Neighbors, "neighbors", c.Neighbors, "neighbourhood: 4 (von Neumann) or 8 (Moore)")
	fs.Float64Var(&c.PFire, "p", c.PFire, "per-step spread probability in [0,1]")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for terrain generation")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.FireTPS, "fire-tps", c.FireTPS, "fire steps per second")
}

// Forest converts the flags into a validated lattice configuration.
func (c *Config) Forest() (forest.Config, error) {
	cfg := forest.Config{
		N:                 c.N,
		Density:           c.Density,
		Topology:          forest.Topology(c.Neighbors),
		SpreadProbability: c.PFire,
	}
	if err := cfg.Validate(); err != nil {
		return forest.Config{}, errors.Trace(err)
	}
	return cfg, nil
}

// SimConfig renders the lattice flags as the key/value map understood by the
// sim registry.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"n":         strconv.Itoa(c.N),
		"density":   strconv.FormatFloat(c.Density, 'g', -1, 64),
		"neighbors": strconv.Itoa(c.Neighbors),
		"p_fire":    strconv.FormatFloat(c.PFire, 'g', -1, 64),
		"seed":      strconv.FormatInt(c.Seed, 10),
	}
}

// Validate checks the viewer-only settings along with the lattice.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return errors.NotValidf("scale %d", c.Scale)
	}
	if c.TPS <= 0 {
		return errors.NotValidf("tps %d", c.TPS)
	}
	if c.FireTPS <= 0 {
		return errors.NotValidf("fire-tps %d", c.FireTPS)
	}
	_, err := c.Forest()
	return errors.Trace(err)
}
