package rng

import "math/rand/v2"

// Source is the random stream consumed by grids and trial runners. Every
// consumer is handed one explicitly; nothing in the module falls back to a
// package-level generator.
type Source interface {
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewStream returns the generator for substream k of seed. Substreams of the
// same seed are seeded independently of each other and of NewRNG(seed), so
// parallel workers can each own one without sharing state.
func NewStream(seed uint64, k uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, splitmix(k+1)))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Bernoulli reports whether a draw succeeds with probability p. Exactly one
// value is consumed regardless of p.
func (r *RNG) Bernoulli(p float64) bool {
	return Bernoulli(r, p)
}

// Bernoulli draws one value from src and reports whether it falls below p.
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// splitmix scrambles a stream index so neighbouring indices yield unrelated
// PCG sequences.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
