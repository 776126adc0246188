package app

import (
	"testing"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestfire/internal/forest"
)

func TestConfigDefaultsValid(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	fc, err := cfg.Forest()
	require.NoError(t, err)
	assert.Equal(t, forest.DefaultConfig(), fc)
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := gnuflag.NewFlagSet("forestfire", gnuflag.ContinueOnError)
	cfg.Bind(fs)

	err := fs.Parse(true, []string{"-n", "32", "--density", "0.45", "--neighbors", "8", "-p", "0.7", "--seed", "9", "--fire-tps", "4"})
	require.NoError(t, err)

	fc, err := cfg.Forest()
	require.NoError(t, err)
	assert.Equal(t, 32, fc.N)
	assert.Equal(t, 0.45, fc.Density)
	assert.Equal(t, forest.Moore8, fc.Topology)
	assert.Equal(t, 0.7, fc.SpreadProbability)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 4, cfg.FireTPS)
}

func TestConfigSimConfigRoundTrips(t *testing.T) {
	cfg := NewConfig()
	cfg.N, cfg.Density, cfg.Neighbors, cfg.PFire = 20, 0.55, 8, 0.35

	want, err := cfg.Forest()
	require.NoError(t, err)
	assert.Equal(t, want, forest.FromMap(cfg.SimConfig()))
	assert.Equal(t, "42", cfg.SimConfig()["seed"])
}

func TestConfigValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"scale":     func(c *Config) { c.Scale = 0 },
		"tps":       func(c *Config) { c.TPS = -1 },
		"fire-tps":  func(c *Config) { c.FireTPS = 0 },
		"neighbors": func(c *Config) { c.Neighbors = 6 },
		"density":   func(c *Config) { c.Density = 1.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewConfig()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
		})
	}
}
