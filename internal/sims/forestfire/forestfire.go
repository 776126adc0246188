// Package forestfire adapts the forest lattice to the interactive viewer:
// seeding, restarting on the same terrain, click-to-ignite and HUD controls.
package forestfire

import (
	"fmt"
	"strconv"

	"github.com/juju/errors"

	"forestfire/internal/core"
	"forestfire/internal/forest"
	"forestfire/pkg/rng"
)

// Sim drives a single forest.Grid for the viewer.
type Sim struct {
	cfg  forest.Config
	seed int64
	grid *forest.Grid

	start  forest.Cell
	lit    bool
	active bool
}

// New validates cfg and draws the first terrain from seed.
func New(cfg forest.Config, seed int64) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	s := &Sim{cfg: cfg}
	s.Reset(seed)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "forestfire" }

// Size returns the lattice dimensions.
func (s *Sim) Size() core.Size { return s.grid.Size() }

// Cells exposes the live state buffer, one forest.State per byte.
func (s *Sim) Cells() []uint8 { return s.grid.Raw() }

// Grid exposes the underlying lattice for read-only metric queries.
func (s *Sim) Grid() *forest.Grid { return s.grid }

// Config returns the active configuration.
func (s *Sim) Config() forest.Config { return s.cfg }

// Seed returns the seed of the current terrain.
func (s *Sim) Seed() int64 { return s.seed }

// Reset draws fresh terrain from seed. The same seed always yields the same
// terrain for a given configuration.
func (s *Sim) Reset(seed int64) {
	s.seed = seed
	g, err := forest.New(s.cfg, rng.NewRNG(seed))
	if err != nil {
		// cfg was validated in New and every setter clamps, so this is a
		// programming error.
		panic(fmt.Sprintf("forestfire: %v", err))
	}
	s.grid = g
	s.lit = false
	s.active = false
}

// Restart rewinds to the current terrain without drawing new randomness.
func (s *Sim) Restart() {
	s.grid.Reset()
	s.lit = false
	s.active = false
}

// Ignite sets column x, row y on fire.
func (s *Sim) Ignite(x, y int) bool {
	if !s.grid.Ignite(y, x) {
		return false
	}
	s.start = forest.Cell{I: y, J: x}
	s.lit = true
	s.active = true
	return true
}

// Step advances the fire and reports whether anything was burning.
func (s *Sim) Step() bool {
	s.active = s.grid.Step()
	return s.active
}

// Active reports whether the last step still had fire.
func (s *Sim) Active() bool { return s.active }

// FrontierMask marks burned cells bordering intact trees.
func (s *Sim) FrontierMask() []bool { return s.grid.FrontierMask() }

// Stats reports the live metrics shown beside the lattice.
func (s *Sim) Stats() []core.Stat {
	m := s.grid.Snapshot()
	start := "--"
	if s.lit {
		start = fmt.Sprintf("(%d,%d)", s.start.I, s.start.J)
	}
	status := "idle"
	switch {
	case s.active:
		status = "burning"
	case s.lit:
		status = "extinct"
	}
	return []core.Stat{
		{Label: "Status", Value: status},
		{Label: "Ignition", Value: start},
		{Label: "Iteration", Value: strconv.Itoa(m.Iteration)},
		{Label: "Burning", Value: strconv.Itoa(m.FireCount)},
		{Label: "Burned", Value: strconv.Itoa(m.BurnedCount)},
		{Label: "Burned %", Value: strconv.FormatFloat(100*m.BurnedFraction, 'f', 1, 64)},
		{Label: "Frontier", Value: strconv.Itoa(m.FrontierCount)},
		{Label: "Percolates", Value: strconv.FormatBool(m.Percolates)},
	}
}

func init() {
	core.Register("forestfire", func(cfg map[string]string) (core.Sim, error) {
		c := forest.FromMap(cfg)
		seed := int64(1)
		if v, ok := cfg["seed"]; ok {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, errors.NotValidf("seed %q", v)
			}
			seed = parsed
		}
		return New(c, seed)
	})
}
