//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"forestfire/internal/render"
	"forestfire/internal/sims/forestfire"
	"forestfire/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts the forest-fire simulation to the ebiten.Game interface.
type Game struct {
	sim     *pacedSim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *slog.Logger

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation. fireTPS is the initial
// number of fire steps per second.
func New(sim *forestfire.Sim, scale, fireTPS int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	paced := newPacedSim(sim, fireTPS)
	size := sim.Size()
	gp := render.NewGridPainter(size.W, size.H)
	return &Game{
		sim:     paced,
		painter: gp,
		overlay: ui.NewOverlay(paced, gp, scale),
		hud:     ui.NewHUD(paced, hudWidth),
		log:     log,
		scale:   scale,
	}
}

// Reset draws new terrain from seed.
func (g *Game) Reset(seed int64) {
	g.sim.Reset(seed)
	g.tickOnce = false
	g.log.Info("new terrain", "seed", seed)
}

// Update handles per-frame input and advances the fire at its own pace.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.sim.pace.Rearm()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		restart(g.sim, g.sim.Seed())
		g.tickOnce = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	size := g.sim.Size()
	onPanel := g.hud.Update(size.W * g.scale)
	if !onPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ignite()
	}

	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case !g.paused && g.sim.Active() && g.sim.due():
		if !g.sim.Step() {
			g.log.Info("fire extinct", "stats", g.sim.Grid().Snapshot())
		}
	}
	return nil
}

func (g *Game) ignite() {
	mx, my := ebiten.CursorPosition()
	if x, y, ok := igniteAt(g.sim, mx, my, g.scale); ok {
		g.sim.pace.Rearm()
		g.log.Debug("ignite", "row", y, "col", x)
	}
}

// Draw renders the lattice, overlays and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), render.ForestPalette(), g.scale)
	g.overlay.Draw(screen)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	h := s.H * g.scale
	if m := g.hud.MinHeight(); m > h {
		h = m
	}
	return s.W*g.scale + g.hud.Width(), h
}
