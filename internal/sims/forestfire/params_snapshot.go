package forestfire

import (
	"math"

	"forestfire/internal/core"
	"forestfire/internal/forest"
)

var controls = []core.ParameterControl{
	{Key: "density", Label: "Density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "p_fire", Label: "Spread p", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "neighbors", Label: "Neighbours", Type: core.ParamTypeInt, Step: 4, Min: 4, Max: 8, HasMin: true, HasMax: true},
}

// Parameters reports the active configuration for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("n", "Size", s.cfg.N),
				core.Int64Param("seed", "Seed", s.seed),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				core.FloatParam("density", "Density", s.cfg.Density),
				core.FloatParam("p_fire", "Spread p", s.cfg.SpreadProbability),
				core.IntParam("neighbors", "Neighbours", int(s.cfg.Topology)),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl { return controls }

// SetFloatParameter updates density or spread probability and redraws the
// terrain from the current seed, so the same seed keeps the same random
// stream.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat || math.IsNaN(value) {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "density":
		s.cfg.Density = value
	case "p_fire":
		s.cfg.SpreadProbability = value
	}
	s.Reset(s.seed)
	return true
}

// SetIntParameter switches the neighbour topology. Only 4 and 8 are accepted.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if key != "neighbors" {
		return false
	}
	topo := forest.Topology(value)
	if !topo.Valid() {
		return false
	}
	s.cfg.Topology = topo
	s.Reset(s.seed)
	return true
}

func control(key string) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}
