package core

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteGridCopyAndCount(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 7)
	g.Set(0, 0, 7)
	assert.Equal(t, uint8(7), g.At(2, 1))
	assert.Equal(t, 5, g.Index(2, 1))
	assert.Equal(t, 2, g.Count(7))

	other := NewByteGrid(3, 2)
	require.True(t, other.CopyFrom(g))
	other.Set(1, 1, 7)
	assert.Equal(t, 2, g.Count(7), "copy must not alias")

	require.True(t, g.CopyFrom(other))
	assert.Equal(t, 3, g.Count(7))
	assert.False(t, g.CopyFrom(NewByteGrid(2, 2)))
	assert.False(t, g.CopyFrom(nil))
}

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(0, -4)
	assert.Equal(t, 1, g.W)
	assert.Equal(t, 1, g.H)
	assert.True(t, g.InBounds(0, 0))
	assert.False(t, g.InBounds(1, 0))
	assert.False(t, g.InBounds(0, -1))
}

func TestLookupUnknownSim(t *testing.T) {
	_, err := Lookup("no-such-sim", nil)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	assert.Equal(t, 0.0, c.Clamp(-1))
	assert.Equal(t, 1.0, c.Clamp(3))
	assert.Equal(t, 0.4, c.Clamp(0.4))
	assert.Equal(t, 12.0, ParameterControl{}.Clamp(12))
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("n", "Size", 3)}},
		{Name: "b", Params: []Parameter{FloatParam("p", "P", 0.25), Int64Param("seed", "Seed", -4)}},
	}}
	p, ok := snap.Lookup("p")
	require.True(t, ok)
	assert.Equal(t, "0.25", p.Value)
	p, ok = snap.Lookup("seed")
	require.True(t, ok)
	assert.Equal(t, "-4", p.Value)
	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

func TestFixedStepRates(t *testing.T) {
	fs := NewFixedStep(0)
	assert.Equal(t, 60, fs.TPS())
	fs.SetTPS(10)
	assert.Equal(t, 10, fs.TPS())
	assert.True(t, fs.ShouldStep(), "first call steps immediately")
}

func TestFixedStepSlowerRateBeforeFirstTick(t *testing.T) {
	fs := NewFixedStep(60)
	fs.SetTPS(1)
	assert.True(t, fs.ShouldStep(), "rate change keeps the first tick armed")
	assert.False(t, fs.ShouldStep(), "second tick waits a full second")

	fs.Rearm()
	fs.SetTPS(2)
	assert.True(t, fs.ShouldStep(), "rearmed controller fires after a rate change")
}
