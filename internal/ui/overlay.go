//go:build ebiten

package ui

import (
	"image/color"

	"forestfire/internal/core"
	"forestfire/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type frontierProvider interface {
	FrontierMask() []bool
}

var targetTint = color.RGBA{R: 66, G: 165, B: 245, A: 255}

// Overlay draws optional visuals on top of the lattice: the burn frontier
// (F) and the percolation target in the far corner (T).
type Overlay struct {
	sim          core.Sim
	painter      *render.GridPainter
	scale        int
	showFrontier bool
	showTarget   bool
	pixel        *ebiten.Image
}

// NewOverlay constructs a new overlay instance sharing the lattice painter.
func NewOverlay(sim core.Sim, painter *render.GridPainter, scale int) *Overlay {
	o := &Overlay{sim: sim, painter: painter, scale: scale, showTarget: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlays from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showFrontier = !o.showFrontier
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showTarget = !o.showTarget
	}
}

// Draw renders the enabled overlays.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showFrontier {
		if p, ok := o.sim.(frontierProvider); ok && o.painter != nil {
			o.painter.BlitMask(screen, p.FrontierMask(), render.FrontierTint, o.scale)
		}
	}
	if o.showTarget {
		o.drawTarget(screen)
	}
}

func (o *Overlay) drawTarget(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W == 0 || size.H == 0 {
		return
	}
	s := float64(o.scale)
	x := float64(size.W-1) * s
	y := float64(size.H-1) * s
	t := s / 4
	if t < 1 {
		t = 1
	}
	o.drawRect(screen, x, y, s, t)
	o.drawRect(screen, x, y+s-t, s, t)
	o.drawRect(screen, x, y, t, s)
	o.drawRect(screen, x+s-t, y, t, s)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(targetTint)
	screen.DrawImage(o.pixel, op)
}
