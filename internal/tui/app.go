package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	maxFrameDT    = 0.1                   // seconds; longer stalls are clamped
	flashFrames   = 6
)

// flash marks where a shot left a drone.
type flash struct {
	pos r2.Point
	ttl int
}

// App is the terminal host. Run owns the world exclusively.
type App struct {
	screen tcell.Screen
	cfg    sim.Config
	world  *sim.World
	logger *log.Logger
	keys   *KeyTracker
	vp     Viewport

	flashes []flash
	paused  bool
	last    time.Time
}

// New builds the host around an initialised screen.
func New(screen tcell.Screen, cfg sim.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		screen: screen,
		cfg:    cfg,
		logger: logger,
		keys:   NewKeyTracker(0),
	}
	w, err := sim.NewWorld(cfg, sim.WithLogger(logger), sim.WithShooter(sim.ShooterFunc(a.onShot)))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	a.world = w
	a.resize()
	return a, nil
}

func (a *App) onShot(d *sim.Drone, dir r2.Point) {
	a.flashes = append(a.flashes, flash{pos: d.Center().Add(dir.Mul(d.Size)), ttl: flashFrames})
}

// World exposes the simulated world.
func (a *App) World() *sim.World { return a.world }

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.vp = Viewport{
		FieldW: float64(a.cfg.Screen.Width),
		FieldH: float64(a.cfg.Screen.Height),
		Cols:   cols,
		Rows:   rows - 1, // status line
	}
}

// Run drives the world until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	a.last = time.Now()

	for {
		select {
		case <-ctx.Done():
			a.world.Close()
			return nil
		case ev := <-events:
			if !a.handleEvent(ev, time.Now()) {
				a.world.Close()
				a.logger.Info("quit", "tick", a.world.TickCount(), "shots", a.world.ShotsFired())
				return nil
			}
		case now := <-ticker.C:
			a.step(now)
			a.draw()
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (a *App) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'p', 'P':
				a.paused = !a.paused
				a.keys.Release()
				return true
			}
		}
		a.keys.Press(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

// step advances the world by the wall-clock time since the last step.
func (a *App) step(now time.Time) {
	dt := now.Sub(a.last).Seconds()
	a.last = now
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	if a.paused {
		return
	}
	a.world.Tick(a.keys.Intent(now), dt)

	kept := a.flashes[:0]
	for _, f := range a.flashes {
		f.ttl--
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	a.flashes = kept
}

func (a *App) status() string {
	state := "running"
	if a.paused {
		state = "PAUSED"
	}
	w := a.world
	return fmt.Sprintf(" T=%d shots=%d drones=%d enemies=%d %s | wasd/arrows move  p pause  q quit",
		w.TickCount(), w.ShotsFired(), w.Player.AliveDrones(), w.AliveEnemies(), state)
}

func (a *App) draw() {
	render(a.screen, a.world, a.vp, a.flashes, a.status())
	a.screen.Show()
}
