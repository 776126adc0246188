package core

import (
	"sort"

	"github.com/juju/errors"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a viewer-driven simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() bool
	Cells() []uint8
}

// Igniter is implemented by sims that accept a user-chosen starting point.
type Igniter interface {
	Ignite(x, y int) bool
}

// Restarter is implemented by sims that can rewind to their initial state
// without drawing new randomness.
type Restarter interface {
	Restart()
}

// Stat is a labelled read-only value shown next to the simulation.
type Stat struct {
	Label string
	Value string
}

// StatsProvider exposes live read-only values for the HUD.
type StatsProvider interface {
	Stats() []Stat
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup constructs the named sim from cfg.
func Lookup(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, errors.NotFoundf("sim %q (have %v)", name, Names())
	}
	sim, err := f(cfg)
	if err != nil {
		return nil, errors.Annotatef(err, "building sim %q", name)
	}
	return sim, nil
}

// Names lists the registered sims in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
