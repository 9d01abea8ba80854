package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// Game is the windowed host. It owns one sim.World per round and steps it
// from ebiten's Update.
type Game struct {
	cfg    sim.Config
	logger *log.Logger

	fieldW int // playfield width (log panel takes the rest)
	fieldH int
	width  int
	height int

	screen screenKind
	frames int // frames on the current screen

	world      *sim.World
	simLog     *sim.SimLog
	reporter   *sim.SimReporter
	tracers    *TracerSet
	thoughtLog *ThoughtLog
	lastRound  roundSummary

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds
	dt        float64

	showHUD   bool
	showDebug bool

	status       string
	statusFrames int

	writeClipboard func(string) error
}

// roundSummary is what the ending screen shows.
type roundSummary struct {
	ticks       int
	shots       int
	enemiesLeft int
}

// New builds the host on the logo screen with a fresh world ready.
func New(cfg sim.Config, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		cfg:            cfg,
		logger:         logger,
		fieldW:         cfg.Screen.Width,
		fieldH:         cfg.Screen.Height,
		width:          cfg.Screen.Width + logPanelWidth,
		height:         cfg.Screen.Height,
		screen:         screenLogo,
		thoughtLog:     NewThoughtLog(),
		simSpeed:       1.0,
		dt:             1.0 / 60,
		showHUD:        true,
		showDebug:      true,
		writeClipboard: systemClipboard,
	}
	if err := g.startRound(); err != nil {
		return nil, err
	}
	return g, nil
}

// startRound replaces the world with a fresh one built from cfg.
func (g *Game) startRound() error {
	g.simLog = sim.NewSimLog(false)
	g.reporter = sim.NewSimReporter(0, false)
	g.tracers = NewTracerSet(g.enemyAt, g.droneSlot)
	w, err := sim.NewWorld(g.cfg,
		sim.WithLogger(g.logger),
		sim.WithSimLog(g.simLog),
		sim.WithReporter(g.reporter),
		sim.WithShooter(g.tracers),
	)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	g.world = w
	g.thoughtLog.Reset()
	g.tickAccum = 0
	return nil
}

func (g *Game) enemyAt(slot int) (r2.Point, bool) {
	if g.world == nil || slot < 0 || slot >= len(g.world.Enemies) || !g.world.Enemies[slot].Alive {
		return r2.Point{}, false
	}
	return g.world.Enemies[slot].Position, true
}

func (g *Game) droneSlot(d *sim.Drone) int {
	for i := range g.world.Player.Drones {
		if &g.world.Player.Drones[i] == d {
			return i
		}
	}
	return -1
}

func (g *Game) Update() error {
	g.frames++
	if g.statusFrames > 0 {
		g.statusFrames--
	}
	if tps := ebiten.TPS(); tps > 0 {
		g.dt = 1.0 / float64(tps)
	}

	if g.screen == screenGameplay {
		g.handleInput()
		g.stepSim(readIntent(ebiten.IsKeyPressed))
	}

	next := nextScreen(g.screen, screenInput{
		frames:       g.frames,
		logoFrames:   g.cfg.Screen.LogoFrames,
		enter:        inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		escape:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		enemiesAlive: g.world.AliveEnemies(),
	})
	if next != g.screen {
		return g.enterScreen(next)
	}
	return nil
}

// enterScreen switches screens, starting or closing rounds on the way.
func (g *Game) enterScreen(next screenKind) error {
	switch next {
	case screenGameplay:
		if g.world.Closed() || g.world.TickCount() > 0 {
			if err := g.startRound(); err != nil {
				return err
			}
		}
	case screenEnding:
		g.lastRound = roundSummary{
			ticks:       g.world.TickCount(),
			shots:       g.world.ShotsFired(),
			enemiesLeft: g.world.AliveEnemies(),
		}
		g.world.Close()
		run := g.reporter.Run()
		g.logger.Info("round over",
			"ticks", run.Ticks, "shots", run.Shots, "enemies_left", g.lastRound.enemiesLeft,
			"mean_distance", fmt.Sprintf("%.1f", run.MeanDistance))
	}
	g.logger.Debug("screen", "from", g.screen, "to", next)
	g.screen = next
	g.frames = 0
	return nil
}

// stepSim runs as many ticks as the speed multiplier allows this frame.
func (g *Game) stepSim(in sim.Intent) {
	if g.simSpeed <= 0 {
		return
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick(in)
	}
}

// simTick advances the world one tick and resolves landed tracers.
func (g *Game) simTick(in sim.Intent) {
	g.world.Tick(in, g.dt)
	for _, h := range g.tracers.Update() {
		g.applyHit(h)
	}
	g.thoughtLog.Sync(g.simLog, g.world.TickCount())
}

// applyHit removes an enemy that a tracer reached while it was still alive.
func (g *Game) applyHit(h Hit) {
	if _, ok := g.enemyAt(h.Enemy); !ok {
		return
	}
	g.world.KillEnemy(h.Enemy)
	label := "--"
	if h.Drone >= 0 {
		label = fmt.Sprintf("D%d", h.Drone)
	}
	g.simLog.Add(g.world.TickCount(), label, "roster", "enemy down",
		fmt.Sprintf("E%d left=%d", h.Enemy, g.world.AliveEnemies()), float64(h.Enemy))
}

// handleInput processes edge-triggered gameplay keys.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = slowerSpeed(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = fasterSpeed(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyDebugReport()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	field := screen.SubImage(image.Rect(0, 0, g.fieldW, g.fieldH)).(*ebiten.Image)

	switch g.screen {
	case screenLogo:
		g.drawLogo(field)
	case screenTitle:
		g.drawTitle(field)
	case screenGameplay:
		g.drawWorld(field)
		if g.showHUD {
			g.drawHUD(field)
		}
	case screenEnding:
		g.drawEnding(field)
	}

	g.thoughtLog.Draw(screen, g.fieldW, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// World exposes the current round's world.
func (g *Game) World() *sim.World {
	return g.world
}
