//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"forestfire/internal/app"
	"forestfire/internal/core"
	"forestfire/internal/sims/forestfire"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/juju/gnuflag"
	"github.com/lmittmann/tint"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
	}))

	cfg := app.NewConfig()
	fs := gnuflag.NewFlagSet("forestfire", gnuflag.ExitOnError)
	cfg.Bind(fs)
	if err := fs.Parse(true, os.Args[1:]); err != nil {
		logger.Error("parse flags", "err", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	fc, _ := cfg.Forest()

	built, err := core.Lookup("forestfire", cfg.SimConfig())
	if err != nil {
		logger.Error("create simulation", "err", err)
		os.Exit(1)
	}
	sim, ok := built.(*forestfire.Sim)
	if !ok {
		logger.Error("unexpected simulation type", "type", fmt.Sprintf("%T", built))
		os.Exit(1)
	}

	game := app.New(sim, cfg.Scale, cfg.FireTPS, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("forestfire")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	logger.Info("viewer ready", "n", fc.N, "density", fc.Density, "neighbors", int(fc.Topology), "p", fc.SpreadProbability, "seed", cfg.Seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
