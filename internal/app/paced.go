package app

import (
	"forestfire/internal/core"
	"forestfire/internal/sims/forestfire"
)

const fireTPSKey = "fire_tps"

var fireTPSControl = core.ParameterControl{
	Key:    fireTPSKey,
	Label:  "Steps/s",
	Type:   core.ParamTypeInt,
	Step:   1,
	Min:    1,
	Max:    60,
	HasMin: true,
	HasMax: true,
}

// pacedSim exposes the fire step rate as one more HUD control next to the
// lattice parameters.
type pacedSim struct {
	*forestfire.Sim
	pace *core.FixedStep
}

func newPacedSim(sim *forestfire.Sim, tps int) *pacedSim {
	return &pacedSim{Sim: sim, pace: core.NewFixedStep(tps)}
}

func (p *pacedSim) Parameters() core.ParameterSnapshot {
	snap := p.Sim.Parameters()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name:   "Viewer",
		Params: []core.Parameter{core.IntParam(fireTPSKey, fireTPSControl.Label, p.pace.TPS())},
	})
	return snap
}

func (p *pacedSim) ParameterControls() []core.ParameterControl {
	base := p.Sim.ParameterControls()
	out := make([]core.ParameterControl, 0, len(base)+1)
	out = append(out, base...)
	return append(out, fireTPSControl)
}

func (p *pacedSim) SetIntParameter(key string, value int) bool {
	if key != fireTPSKey {
		return p.Sim.SetIntParameter(key, value)
	}
	p.pace.SetTPS(int(fireTPSControl.Clamp(float64(value))))
	return true
}

// due reports whether the fire should advance this frame.
func (p *pacedSim) due() bool { return p.pace.ShouldStep() }

// igniteAt sets the cell under screen pixel (px, py) on fire when sim accepts
// ignition. scale is the pixel size of one cell.
func igniteAt(sim core.Sim, px, py, scale int) (x, y int, ok bool) {
	ig, can := sim.(core.Igniter)
	if !can || scale <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/scale, py/scale
	return x, y, ig.Ignite(x, y)
}

// restart rewinds sim to its current terrain, falling back to a reseed when
// it cannot restart in place.
func restart(sim core.Sim, seed int64) {
	if r, ok := sim.(core.Restarter); ok {
		r.Restart()
		return
	}
	sim.Reset(seed)
}
