package forest

// Metrics is the bundle of live descriptors a viewer refreshes after every
// tick.
type Metrics struct {
	Iteration      int
	BurnedCount    int
	BurnedFraction float64
	FrontierCount  int
	FireCount      int
	TreeCount      int
	Percolates     bool
}

// frontierOffsets is always the 4-neighbourhood, whatever the spread
// topology, so frontier sizes compare across 4- and 8-neighbour runs.
var frontierOffsets = vonNeumannOffsets

// Percolates reports whether fire has reached the bottom-right corner.
func (g *Grid) Percolates() bool {
	s := State(g.cur.At(g.n-1, g.n-1))
	return s == Fire || s == Burned
}

// BurnedCount returns the number of burned cells.
func (g *Grid) BurnedCount() int { return g.cur.Count(uint8(Burned)) }

// BurnedFraction returns BurnedCount divided by n².
func (g *Grid) BurnedFraction() float64 {
	return float64(g.BurnedCount()) / float64(g.n*g.n)
}

// FireCount returns the number of burning cells.
func (g *Grid) FireCount() int { return g.cur.Count(uint8(Fire)) }

// TreeCount returns the number of intact trees.
func (g *Grid) TreeCount() int { return g.cur.Count(uint8(Tree)) }

// TimeToExtinction returns the number of completed steps. Once Step has
// returned false it is the extinction time; before that it is a live counter.
func (g *Grid) TimeToExtinction() int { return g.iteration }

// FrontierCount returns the number of burned cells with at least one intact
// tree among their four orthogonal neighbours.
func (g *Grid) FrontierCount() int {
	n := 0
	g.eachFrontier(func(int) { n++ })
	return n
}

// FrontierMask marks the frontier cells in row-major order.
func (g *Grid) FrontierMask() []bool {
	mask := make([]bool, g.n*g.n)
	g.eachFrontier(func(idx int) { mask[idx] = true })
	return mask
}

func (g *Grid) eachFrontier(fn func(idx int)) {
	cells := g.cur.Cells()
	for idx, c := range cells {
		if State(c) != Burned {
			continue
		}
		i, j := idx/g.n, idx%g.n
		for _, d := range frontierOffsets {
			ni, nj := i+d[0], j+d[1]
			if g.cur.InBounds(nj, ni) && State(g.cur.At(nj, ni)) == Tree {
				fn(idx)
				break
			}
		}
	}
}

// Snapshot collects the live metrics in one pass over the accessors.
func (g *Grid) Snapshot() Metrics {
	burned := g.BurnedCount()
	return Metrics{
		Iteration:      g.iteration,
		BurnedCount:    burned,
		BurnedFraction: float64(burned) / float64(g.n*g.n),
		FrontierCount:  g.FrontierCount(),
		FireCount:      g.FireCount(),
		TreeCount:      g.TreeCount(),
		Percolates:     g.Percolates(),
	}
}
