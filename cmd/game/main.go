package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/drone-escort/internal/game"
	"github.com/Garsondee/drone-escort/internal/sim"
)

func main() {
	var configPath string
	var farBand string
	var logLevel string

	flag.StringVar(&configPath, "config", "", "TOML config file (defaults when empty)")
	flag.StringVar(&farBand, "far-band", "", "far-band variant override (blended|aligned)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatal("bad log level", "error", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true, Prefix: "game"})

	cfg, err := sim.ResolveConfig(configPath, farBand)
	if err != nil {
		logger.Fatal("bad config", "error", err)
	}
	g, err := game.New(cfg, logger)
	if err != nil {
		logger.Fatal("start game", "error", err)
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Drone Escort")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", "error", err)
	}
}
