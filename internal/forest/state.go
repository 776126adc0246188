package forest

import "fmt"

// State enumerates the lattice cell values.
type State uint8

const (
	Empty State = iota
	Tree
	Fire
	Burned
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Tree:
		return "tree"
	case Fire:
		return "fire"
	case Burned:
		return "burned"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the four cell states.
func (s State) Valid() bool { return s <= Burned }

// Topology selects which neighbours a burning cell can ignite. The numeric
// value is the neighbour count.
type Topology int

const (
	// VonNeumann4 uses the four orthogonal neighbours.
	VonNeumann4 Topology = 4
	// Moore8 adds the four diagonals.
	Moore8 Topology = 8
)

var (
	vonNeumannOffsets = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	mooreOffsets      = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Offsets returns the (di, dj) neighbour offsets in traversal order. The
// returned slice is shared and must not be modified.
func (t Topology) Offsets() [][2]int {
	if t == Moore8 {
		return mooreOffsets
	}
	return vonNeumannOffsets
}

// Valid reports whether t is a supported topology.
func (t Topology) Valid() bool { return t == VonNeumann4 || t == Moore8 }

func (t Topology) String() string {
	switch t {
	case VonNeumann4:
		return "von-neumann-4"
	case Moore8:
		return "moore-8"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Cell addresses a lattice site by row i and column j.
type Cell struct {
	I, J int
}
