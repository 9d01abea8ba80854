package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// ErrRosterFull is returned when every slot of a fixed roster is alive.
var ErrRosterFull = errors.New("roster full")

// World is the whole simulation state. It is not safe for concurrent use;
// the host that owns it calls Tick once per frame.
type World struct {
	Player  Player
	Enemies []Enemy

	cfg     Config
	farBand FarBandModel

	tick   int
	closed bool
	shots  int

	// Previous-tick drone centers, reused every tick.
	centers []r2.Point
	alive   []bool

	shooter  Shooter
	simLog   *SimLog
	reporter *SimReporter
	logger   *log.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithShooter installs the fire callback.
func WithShooter(s Shooter) WorldOption {
	return func(w *World) { w.shooter = s }
}

// WithLogger sets the structured logger. The core only logs at debug level.
func WithLogger(l *log.Logger) WorldOption {
	return func(w *World) { w.logger = l }
}

// WithSimLog records events into sl.
func WithSimLog(sl *SimLog) WorldOption {
	return func(w *World) { w.simLog = sl }
}

// WithReporter attaches a reporter that observes the world after every tick.
func WithReporter(r *SimReporter) WorldOption {
	return func(w *World) { w.reporter = r }
}

// NewWorld validates cfg and builds the initial rosters: the configured
// drones in formation around the player and a row of enemies.
func NewWorld(cfg Config, opts ...WorldOption) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	fb, _ := cfg.Drone.FarBandModel()
	ft, _ := ParseFormation(cfg.Drone.Formation)

	w := &World{
		Player:  newPlayer(cfg.Player, cfg.MaxDrones),
		Enemies: make([]Enemy, cfg.MaxEnemies),
		cfg:     cfg,
		farBand: fb,
		centers: make([]r2.Point, cfg.MaxDrones),
		alive:   make([]bool, cfg.MaxDrones),
		simLog:  NewSimLog(false),
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(w)
	}

	for _, off := range formationOffsets(ft, cfg.Drone.Count, cfg.Drone.Spacing) {
		if _, err := w.Player.SpawnDrone(NewDrone(cfg.Drone, w.Player.Pos.Add(off))); err != nil {
			return nil, fmt.Errorf("new world: spawn drone: %w", err)
		}
	}
	e := cfg.Enemy
	for i := 0; i < e.Count; i++ {
		pos := vmath.Vec(e.OriginX+float64(i)*e.Spacing, e.OriginY)
		if _, err := w.SpawnEnemy(pos, e.Size); err != nil {
			return nil, fmt.Errorf("new world: spawn enemy: %w", err)
		}
	}
	return w, nil
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// FarBand returns the active far-band preset.
func (w *World) FarBand() FarBandModel { return w.farBand }

// SetFarBand switches the far-band preset at runtime.
func (w *World) SetFarBand(m FarBandModel) { w.farBand = m }

// TickCount is the number of ticks simulated so far.
func (w *World) TickCount() int { return w.tick }

// ShotsFired is the total number of shots across all drones.
func (w *World) ShotsFired() int { return w.shots }

func (w *World) SimLog() *SimLog { return w.simLog }

// Closed reports whether Close has been called.
func (w *World) Closed() bool { return w.closed }

// Close ends the simulation. Further ticks are ignored.
func (w *World) Close() {
	w.closed = true
	w.logger.Debug("world closed", "tick", w.tick, "shots", w.shots)
}

// SpawnEnemy places a live enemy in the first dead slot.
func (w *World) SpawnEnemy(pos r2.Point, size float64) (int, error) {
	for i := range w.Enemies {
		if !w.Enemies[i].Alive {
			w.Enemies[i] = Enemy{Alive: true, Position: pos, Size: size}
			return i, nil
		}
	}
	w.logger.Debug("enemy roster full", "capacity", len(w.Enemies))
	return -1, ErrRosterFull
}

// KillEnemy marks a slot dead. Out-of-range slots are ignored.
func (w *World) KillEnemy(i int) {
	if i >= 0 && i < len(w.Enemies) {
		w.Enemies[i].Alive = false
	}
}

// AliveEnemies counts live enemy slots.
func (w *World) AliveEnemies() int {
	n := 0
	for i := range w.Enemies {
		if w.Enemies[i].Alive {
			n++
		}
	}
	return n
}

// Tick advances the simulation by dt seconds: player first, then every live
// drone in roster order (steer, separate, integrate, shoot). Separation reads
// the drone centers as they were before this tick. A non-positive dt is
// ignored.
func (w *World) Tick(in Intent, dt float64) {
	if w.closed {
		return
	}
	if dt <= 0 {
		w.logger.Debug("tick skipped", "dt", dt, "tick", w.tick)
		return
	}
	w.tick++

	p := &w.Player
	p.Update(in, dt)
	w.simLog.AddVerbose(w.tick, "P", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", p.Pos.X, p.Pos.Y), p.Speed())
	playerCenter := p.Center()

	for i := range p.Drones {
		w.centers[i] = p.Drones[i].Center()
		w.alive[i] = p.Drones[i].Alive
	}

	for i := range p.Drones {
		d := &p.Drones[i]
		if !d.Alive {
			continue
		}
		prev := d.band
		band := d.Steer(playerCenter, w.farBand, dt)
		if band != prev {
			w.simLog.Add(w.tick, droneLabel(i), "band", "change",
				fmt.Sprintf("%s → %s", prev, band), vmath.Distance(playerCenter, d.Center()))
		}

		d.Acc = d.Acc.Add(separationPush(i, w.centers, w.alive, d.Size, w.cfg.Separation))
		d.Integrate(dt)

		if shot := d.updateGun(w.Enemies, w.cfg.Drone.FacingBlend, w.shooter); shot.fired {
			w.shots++
			w.simLog.Add(w.tick, droneLabel(i), "shot", "fired",
				fmt.Sprintf("enemy=%d dir=(%.2f,%.2f)", shot.enemy, shot.dir.X, shot.dir.Y), float64(shot.enemy))
			w.logger.Debug("drone fired", "tick", w.tick, "drone", i, "enemy", shot.enemy)
		}

		w.simLog.AddVerbose(w.tick, droneLabel(i), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", d.Pos.X, d.Pos.Y), d.Speed())
	}

	if w.reporter != nil {
		w.reporter.Observe(w)
	}
}
