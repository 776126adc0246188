package forest

import (
	"github.com/juju/errors"

	"forestfire/internal/core"
	"forestfire/pkg/rng"
)

// Grid is an n×n forest lattice evolving under the fire spread rule.
//
// Cells are addressed as (i, j) = (row, column) and stored row-major. The
// grid never owns its randomness: the Source handed to New is used for the
// terrain draw and for every propagation draw afterwards.
type Grid struct {
	cfg Config
	n   int
	src rng.Source

	cur     *core.ByteGrid
	nxt     *core.ByteGrid
	initial *core.ByteGrid

	// sampled[idx] == epoch marks a tree already drawn for during the
	// current step.
	sampled []uint32
	epoch   uint32
	burning []int

	iteration int
}

// New draws fresh terrain from src and returns the resulting grid. Each site
// consumes one draw in row-major order and becomes a tree when the draw is
// below cfg.Density.
func New(cfg Config, src rng.Source) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if src == nil {
		return nil, errors.NotValidf("nil random source")
	}
	g := alloc(cfg, src)
	cells := g.cur.Cells()
	for idx := range cells {
		if rng.Bernoulli(src, cfg.Density) {
			cells[idx] = uint8(Tree)
		} else {
			cells[idx] = uint8(Empty)
		}
	}
	g.initial.CopyFrom(g.cur)
	return g, nil
}

// NewFromTerrain builds a grid over a caller-supplied terrain instead of a
// random draw. cfg.Density is kept for reporting only. terrain becomes the
// initial terrain that Reset restores.
func NewFromTerrain(cfg Config, terrain []State, src rng.Source) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if src == nil {
		return nil, errors.NotValidf("nil random source")
	}
	if len(terrain) != cfg.N*cfg.N {
		return nil, errors.NotValidf("terrain of %d cells for a %dx%d grid", len(terrain), cfg.N, cfg.N)
	}
	g := alloc(cfg, src)
	cells := g.cur.Cells()
	for idx, s := range terrain {
		if !s.Valid() {
			return nil, errors.NotValidf("cell state %d at index %d", uint8(s), idx)
		}
		cells[idx] = uint8(s)
	}
	g.initial.CopyFrom(g.cur)
	return g, nil
}

func alloc(cfg Config, src rng.Source) *Grid {
	return &Grid{
		cfg:     cfg,
		n:       cfg.N,
		src:     src,
		cur:     core.NewByteGrid(cfg.N, cfg.N),
		nxt:     core.NewByteGrid(cfg.N, cfg.N),
		initial: core.NewByteGrid(cfg.N, cfg.N),
		sampled: make([]uint32, cfg.N*cfg.N),
	}
}

// Config returns the parameters the grid was built with.
func (g *Grid) Config() Config { return g.cfg }

// N returns the side length.
func (g *Grid) N() int { return g.n }

// Topology returns the neighbour topology used for spread.
func (g *Grid) Topology() Topology { return g.cfg.Topology }

// Size returns the lattice dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.n, H: g.n} }

// InBounds reports whether (i, j) lies on the lattice.
func (g *Grid) InBounds(i, j int) bool { return g.cur.InBounds(j, i) }

// At returns the state of cell (i, j). Out-of-bounds reads report Empty.
func (g *Grid) At(i, j int) State {
	if !g.InBounds(i, j) {
		return Empty
	}
	return State(g.cur.At(j, i))
}

// Cells returns a copy of the current states in row-major order.
func (g *Grid) Cells() []State {
	return toStates(g.cur.Cells())
}

// Raw exposes the live row-major state buffer for renderers. Callers must
// treat it as read-only; it is replaced by the next Step.
func (g *Grid) Raw() []uint8 { return g.cur.Cells() }

// InitialTerrain returns a copy of the terrain as drawn at construction,
// before any ignition.
func (g *Grid) InitialTerrain() []State {
	return toStates(g.initial.Cells())
}

// Ignite sets (i, j) on fire when it is in bounds and currently a tree. The
// iteration counter restarts when no fire was active; igniting an extra
// point during an ongoing fire keeps counting.
func (g *Grid) Ignite(i, j int) bool {
	if !g.InBounds(i, j) || State(g.cur.At(j, i)) != Tree {
		return false
	}
	if !g.Active() {
		g.iteration = 0
	}
	g.cur.Set(j, i, uint8(Fire))
	return true
}

// Active reports whether any cell is burning.
func (g *Grid) Active() bool {
	for _, c := range g.cur.Cells() {
		if State(c) == Fire {
			return true
		}
	}
	return false
}

// Step advances the fire by one tick and reports whether anything burned.
//
// Every decision is made against the state at the start of the call: burning
// cells become burned, and each tree adjacent to at least one of them is
// sampled exactly once, in row-major order of the burning cells and topology
// order of their neighbours. A successful draw sets the tree on fire in the
// next state. When nothing is burning Step returns false and leaves the grid
// and the iteration counter untouched.
func (g *Grid) Step() bool {
	cur := g.cur.Cells()
	g.burning = g.burning[:0]
	for idx, c := range cur {
		if State(c) == Fire {
			g.burning = append(g.burning, idx)
		}
	}
	if len(g.burning) == 0 {
		return false
	}

	g.nxt.CopyFrom(g.cur)
	next := g.nxt.Cells()
	g.nextEpoch()
	offsets := g.cfg.Topology.Offsets()
	p := g.cfg.SpreadProbability

	for _, idx := range g.burning {
		next[idx] = uint8(Burned)
		i, j := idx/g.n, idx%g.n
		for _, d := range offsets {
			ni, nj := i+d[0], j+d[1]
			if !g.cur.InBounds(nj, ni) {
				continue
			}
			nIdx := g.cur.Index(nj, ni)
			if State(cur[nIdx]) != Tree || g.sampled[nIdx] == g.epoch {
				continue
			}
			g.sampled[nIdx] = g.epoch
			if rng.Bernoulli(g.src, p) {
				next[nIdx] = uint8(Fire)
			}
		}
	}

	g.cur, g.nxt = g.nxt, g.cur
	g.iteration++
	return true
}

// Run steps until the fire is out and returns the number of steps taken.
func (g *Grid) Run() int {
	steps := 0
	for g.Step() {
		steps++
	}
	return steps
}

// Reset restores the initial terrain and clears the iteration counter
// without consuming randomness.
func (g *Grid) Reset() {
	g.cur.CopyFrom(g.initial)
	g.iteration = 0
}

func (g *Grid) nextEpoch() {
	g.epoch++
	if g.epoch == 0 {
		for i := range g.sampled {
			g.sampled[i] = 0
		}
		g.epoch = 1
	}
}

func toStates(cells []uint8) []State {
	out := make([]State, len(cells))
	for i, c := range cells {
		out[i] = State(c)
	}
	return out
}
