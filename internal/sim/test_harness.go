package sim

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// TestSim is a headless harness for tests and the batch reporter. It wraps a
// World with a scripted input source, a fixed dt, deterministic seeding and
// structured logging.
type TestSim struct {
	World    *World
	SimLog   *SimLog
	Reporter *SimReporter
	Shots    []ShotEvent

	cfg    Config
	dt     float64
	script func(tick int) Intent
	rng    *rand.Rand
	jitter float64

	clearDrones  bool
	clearEnemies bool
	drones       []r2.Point
	enemies      []r2.Point
}

// ShotEvent is one recorded Shooter call.
type ShotEvent struct {
	Tick int
	Pos  r2.Point // drone center at the time of the shot
	Dir  r2.Point
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // applied before the world exists
	simOptRoster                      // applied after the world is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithSeed sets the RNG seed used for enemy jitter.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithDT sets the fixed frame delta (default 1/60).
func WithDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.dt = dt }}
}

// WithInput sets the per-tick input source.
func WithInput(script func(tick int) Intent) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.script = script }}
}

// WithEnemyJitter displaces every enemy by up to px in each axis.
func WithEnemyJitter(px float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.jitter = px }}
}

// WithoutDrones empties the configured drone roster before WithDrone options apply.
func WithoutDrones() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.clearDrones = true }}
}

// WithoutEnemies empties the configured enemy roster before WithEnemy options apply.
func WithoutEnemies() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.clearEnemies = true }}
}

// WithDrone adds a default-configured drone with its top-left corner at (x,y).
func WithDrone(x, y float64) SimOption {
	return SimOption{simOptRoster, func(ts *TestSim) {
		ts.drones = append(ts.drones, r2.Point{X: x, Y: y})
	}}
}

// WithEnemy adds a live enemy centered at (x,y).
func WithEnemy(x, y float64) SimOption {
	return SimOption{simOptRoster, func(ts *TestSim) {
		ts.enemies = append(ts.enemies, r2.Point{X: x, Y: y})
	}}
}

// NewTestSim builds the harness in ordered passes: infrastructure options,
// world construction, roster edits, then jitter.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		cfg:    DefaultConfig(),
		dt:     1.0 / 60,
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		script: func(int) Intent { return Intent{} },
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptRoster {
			o.fn(ts)
		}
	}

	ts.Reporter = NewSimReporter(0, false)
	w, err := NewWorld(ts.cfg,
		WithSimLog(ts.SimLog),
		WithReporter(ts.Reporter),
		WithShooter(ShooterFunc(ts.recordShot)),
	)
	if err != nil {
		return nil, err
	}
	ts.World = w

	if ts.clearDrones {
		for i := range w.Player.Drones {
			w.Player.KillDrone(i)
		}
	}
	if ts.clearEnemies {
		for i := range w.Enemies {
			w.KillEnemy(i)
		}
	}
	for _, pos := range ts.drones {
		if _, err := w.Player.SpawnDrone(NewDrone(ts.cfg.Drone, pos)); err != nil {
			return nil, err
		}
	}
	for _, pos := range ts.enemies {
		if _, err := w.SpawnEnemy(pos, ts.cfg.Enemy.Size); err != nil {
			return nil, err
		}
	}
	if ts.jitter > 0 {
		for i := range w.Enemies {
			if !w.Enemies[i].Alive {
				continue
			}
			w.Enemies[i].Position.X += (ts.rng.Float64()*2 - 1) * ts.jitter
			w.Enemies[i].Position.Y += (ts.rng.Float64()*2 - 1) * ts.jitter
		}
	}
	return ts, nil
}

func (ts *TestSim) recordShot(d *Drone, dir r2.Point) {
	ts.Shots = append(ts.Shots, ShotEvent{Tick: ts.World.TickCount(), Pos: d.Center(), Dir: dir})
}

// Tick is the number of ticks simulated.
func (ts *TestSim) Tick() int { return ts.World.TickCount() }

// Drone returns roster slot i.
func (ts *TestSim) Drone(i int) *Drone { return &ts.World.Player.Drones[i] }

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.World.Tick(ts.script(ts.World.TickCount()+1), ts.dt)
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Tick(ts.script(ts.World.TickCount()+1), ts.dt)
		if predicate(ts) {
			return ts.World.TickCount()
		}
	}
	return -1
}
