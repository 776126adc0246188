package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestStreamsDiffer(t *testing.T) {
	s0 := NewStream(7, 0)
	s1 := NewStream(7, 1)
	same := 0
	for i := 0; i < 32; i++ {
		if s0.Float64() == s1.Float64() {
			same++
		}
	}
	assert.Less(t, same, 32, "substreams of one seed should not coincide")

	again := NewStream(7, 1)
	first := NewStream(7, 1).Float64()
	assert.Equal(t, first, again.Float64())
}

func TestBernoulliExtremes(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		require.False(t, r.Bernoulli(0))
		require.True(t, r.Bernoulli(1))
	}
}

type countingSource struct {
	n int
}

func (c *countingSource) Float64() float64 {
	c.n++
	return 0.5
}

func TestBernoulliConsumesOneDraw(t *testing.T) {
	src := &countingSource{}
	assert.False(t, Bernoulli(src, 0.5))
	assert.True(t, Bernoulli(src, 0.75))
	assert.Equal(t, 2, src.n)
}
