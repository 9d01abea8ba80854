package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/drone-escort/internal/sim"
	"github.com/Garsondee/drone-escort/internal/tui"
)

func main() {
	var configPath string
	var farBand string
	var logLevel string
	var logFile string

	flag.StringVar(&configPath, "config", "", "TOML config file (defaults when empty)")
	flag.StringVar(&farBand, "far-band", "", "far-band variant override (blended|aligned)")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flag.StringVar(&logFile, "log-file", "drone-escort-tui.log", "log destination (the terminal is in use)")
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatal("bad log level", "error", err)
	}
	out, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal("open log file", "path", logFile, "error", err)
	}
	defer out.Close()
	logger := log.NewWithOptions(out, log.Options{Level: level, ReportTimestamp: true, Prefix: "tui"})

	cfg, err := sim.ResolveConfig(configPath, farBand)
	if err != nil {
		log.Fatal("bad config", "error", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("open terminal", "error", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("init terminal", "error", err)
	}

	app, err := tui.New(screen, cfg, logger)
	if err != nil {
		screen.Fini()
		log.Fatal("start", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := app.Run(ctx)
	stop()
	screen.Fini()
	if runErr != nil {
		log.Fatal("run", "error", runErr)
	}
}
