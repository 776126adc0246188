package cli

import (
	"bytes"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestfire/internal/forest"
)

func TestParseCell(t *testing.T) {
	c, err := ParseCell("3, 7")
	require.NoError(t, err)
	assert.Equal(t, forest.Cell{I: 3, J: 7}, c)

	for _, bad := range []string{"", "3", "a,1", "1,b"} {
		_, err := ParseCell(bad)
		assert.True(t, errors.Is(err, errors.NotValid), "%q: %v", bad, err)
	}
}

func TestParseDensitiesList(t *testing.T) {
	ds, err := ParseDensities("0.1, 0.5,0.9")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 0.9}, ds)

	_, err = ParseDensities("0.1,x")
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = ParseDensities(" ")
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestParseDensitiesRange(t *testing.T) {
	ds, err := ParseDensities("0:1:0.1")
	require.NoError(t, err)
	require.Len(t, ds, 11)
	assert.Equal(t, 0.0, ds[0])
	assert.Equal(t, 0.3, ds[3])
	assert.Equal(t, 1.0, ds[10])

	wide, err := ParseDensities("0:1:0.0002")
	require.NoError(t, err)
	assert.Len(t, wide, 5001)

	for _, bad := range []string{"0:1", "0:1:0", "1:0:0.1", "0:a:0.1", "0:1:1e-12", "0:1:0.0001"} {
		_, err := ParseDensities(bad)
		assert.True(t, errors.Is(err, errors.NotValid), "%q: %v", bad, err)
	}
}

func TestKVList(t *testing.T) {
	var l KVList
	require.NoError(t, l.Set("density=0.4"))
	require.NoError(t, l.Set("p_fire = 0.8"))
	require.NoError(t, l.Set("density=0.5"))
	assert.Error(t, l.Set("oops"))

	assert.Equal(t, map[string]string{"density": "0.5", "p_fire": "0.8"}, l.Map())
	assert.Equal(t, "density=0.4,p_fire = 0.8,density=0.5", l.String())
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	assert.Zero(t, buf.Len())

	NewLogger(&buf, true).Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=1")
}
