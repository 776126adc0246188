package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestfire/internal/forest"
	"forestfire/internal/montecarlo"
	"forestfire/pkg/rng"
)

func TestRunSingleTrialRecords(t *testing.T) {
	avi := filepath.Join(t.TempDir(), "trial.avi")
	var out, errOut bytes.Buffer
	err := run([]string{
		"--set", "n=5", "--set", "density=1", "--set", "p_fire=1",
		"--record", avi, "--scale", "2",
	}, &out, &errOut)
	require.NoError(t, err, errOut.String())

	assert.Contains(t, out.String(), "percolates=true")
	assert.Contains(t, out.String(), "burned=25 (1.000)")
	assert.Contains(t, out.String(), "extinction=9")
	assert.Contains(t, errOut.String(), "frames=10")

	data, err := os.ReadFile(avi)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
}

func TestRunAggregate(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"--set", "n=6", "--set", "density=1", "--set", "p_fire=1", "--trials", "4"}, &out, &errOut)
	require.NoError(t, err, errOut.String())
	assert.Contains(t, out.String(), "Aggregate over 4/4 valid trials")
	assert.Contains(t, out.String(), "theta=1.000")
}

func TestRunInvalidStart(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"--set", "n=4", "--set", "density=0"}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Invalid trial")

	out.Reset()
	err = run([]string{"--set", "n=4", "--set", "density=0", "--trials", "3"}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No valid trials")
}

func TestRunRejects(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"--set", "neighbors=6"}, &out, &errOut)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	err = run([]string{"--record", "x.avi", "--trials", "2"}, &out, &errOut)
	assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)

	err = run([]string{"--set", "bogus"}, &out, &errOut)
	assert.Error(t, err)
}

func TestRecordTrialRemovesVideoOnFailure(t *testing.T) {
	avi := filepath.Join(t.TempDir(), "broken.avi")
	boom := errors.New("trial failed")
	_, _, _, err := recordTrial(avi, 4, 2, 10, func(observe montecarlo.Observer) (montecarlo.TrialResult, bool, error) {
		g, err := forest.New(forest.Config{N: 4, Density: 1, Topology: forest.VonNeumann4, SpreadProbability: 1}, rng.NewRNG(1))
		require.NoError(t, err)
		require.NoError(t, observe(g))
		return montecarlo.TrialResult{}, false, boom
	})
	assert.True(t, errors.Is(err, boom), "got %v", err)
	assert.NoFileExists(t, avi)
}

func TestRecordTrialKeepsVideoOnSuccess(t *testing.T) {
	avi := filepath.Join(t.TempDir(), "ok.avi")
	_, ok, frames, err := recordTrial(avi, 4, 2, 10, func(observe montecarlo.Observer) (montecarlo.TrialResult, bool, error) {
		return montecarlo.TrialResult{}, true, nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, frames)
	assert.FileExists(t, avi)
}
