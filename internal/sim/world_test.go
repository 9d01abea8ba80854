package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

func mustSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	ts, err := NewTestSim(opts...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts
}

func TestNewWorld_DefaultRosters(t *testing.T) {
	w, err := NewWorld(DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if len(w.Player.Drones) != 10 || len(w.Enemies) != 100 {
		t.Fatalf("roster capacities = %d/%d, want 10/100", len(w.Player.Drones), len(w.Enemies))
	}
	if w.Player.AliveDrones() != 2 {
		t.Fatalf("expected 2 launched drones, got %d", w.Player.AliveDrones())
	}
	if w.AliveEnemies() != 10 {
		t.Fatalf("expected 10 enemies, got %d", w.AliveEnemies())
	}
	if d := w.Player.Drones[1].Pos.Sub(w.Player.Pos); d.X != 20 || d.Y != 20 {
		t.Fatalf("second drone should start at player+(20,20), got offset %v", d)
	}
	if e := w.Enemies[3].Position; e.X != 320 || e.Y != 200 {
		t.Fatalf("enemy 3 at %v, want (320,200)", e)
	}
}

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Drone.Dampening = 1.5
	if _, err := NewWorld(cfg); err == nil {
		t.Fatal("expected an error for dampening outside [0,1)")
	}
}

func TestWorld_SpawnEnemyRosterFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEnemies = 10
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if _, err := w.SpawnEnemy(vmath.Vec(0, 0), 16); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	w.KillEnemy(4)
	if i, err := w.SpawnEnemy(vmath.Vec(1, 1), 16); err != nil || i != 4 {
		t.Fatalf("spawn should reuse slot 4, got %d err %v", i, err)
	}
}

func TestWorld_TickIgnoresNonPositiveDT(t *testing.T) {
	w, _ := NewWorld(DefaultConfig())
	before := w.Player.Drones[0].Pos
	w.Tick(Intent{Right: true}, 0)
	w.Tick(Intent{Right: true}, -1)
	if w.TickCount() != 0 {
		t.Fatalf("non-positive dt should not advance the tick, got %d", w.TickCount())
	}
	if w.Player.Drones[0].Pos != before || w.Player.Speed() != 0 {
		t.Fatal("non-positive dt should not move anything")
	}
}

func TestWorld_ClosedWorldDoesNotTick(t *testing.T) {
	w, _ := NewWorld(DefaultConfig())
	w.Close()
	w.Tick(Intent{}, dt60)
	if w.TickCount() != 0 || !w.Closed() {
		t.Fatal("closed world should ignore ticks")
	}
}

func TestWorld_DeadDronesAreSkipped(t *testing.T) {
	w, _ := NewWorld(DefaultConfig())
	w.Player.KillDrone(1)
	frozen := w.Player.Drones[1]
	for i := 0; i < 30; i++ {
		w.Tick(Intent{Left: true}, dt60)
	}
	got := w.Player.Drones[1]
	if got.Pos != frozen.Pos || got.FramesSinceShotFired != frozen.FramesSinceShotFired {
		t.Fatal("dead drone state changed during ticks")
	}
}

func TestWorld_SeparationUsesPreviousTickPositions(t *testing.T) {
	ts := mustSim(t,
		WithoutDrones(),
		WithoutEnemies(),
		// Centers at (390,476) and (410,476): 20px apart, both ~60.8px below the
		// player center (400,416), mirrored about its vertical axis.
		WithDrone(380, 466),
		WithDrone(400, 466),
	)
	ts.RunTicks(1)
	a, b := ts.Drone(0), ts.Drone(1)
	if a.Band() != BandHold || b.Band() != BandHold {
		t.Fatalf("both drones should hold, got %s/%s", a.Band(), b.Band())
	}
	if a.Acc.X != -b.Acc.X || a.Acc.Y != b.Acc.Y {
		t.Fatalf("mirrored drones should get mirrored pushes: %v vs %v", a.Acc, b.Acc)
	}
	if math.Abs(a.Acc.X+30) > 1e-9 {
		t.Fatalf("left drone push = %v, want (-30,0)", a.Acc)
	}
}

func TestWorld_InvariantsHoldEveryTick(t *testing.T) {
	script := func(tick int) Intent {
		// Zig-zag hard so drones see every band.
		switch (tick / 45) % 4 {
		case 0:
			return Intent{Right: true}
		case 1:
			return Intent{Back: true, Left: true}
		case 2:
			return Intent{}
		default:
			return Intent{Forward: true}
		}
	}
	ts := mustSim(t, WithInput(script))
	cfg := DefaultConfig()
	cfg.Drone.Count = 6
	cfg.Drone.Formation = FormationRing.String()
	ts2 := mustSim(t, WithInput(script), WithConfig(cfg))

	for _, sim := range []*TestSim{ts, ts2} {
		check := func(s *TestSim) bool {
			p := &s.World.Player
			if p.Speed() > p.MaxVelocity+1e-9 {
				t.Fatalf("T=%d player speed %.4f > %.1f", s.Tick(), p.Speed(), p.MaxVelocity)
			}
			for i := range p.Drones {
				d := &p.Drones[i]
				if !d.Alive {
					continue
				}
				if d.Speed() > d.MaxVelocity+1e-9 {
					t.Fatalf("T=%d D%d speed %.4f > %.1f", s.Tick(), i, d.Speed(), d.MaxVelocity)
				}
				if d.AccelMagnitude() > d.MaxAccel+1e-9 {
					t.Fatalf("T=%d D%d accel %.4f > %.1f", s.Tick(), i, d.AccelMagnitude(), d.MaxAccel)
				}
			}
			return false
		}
		sim.RunUntil(check, 900)
		run := sim.Reporter.Run()
		if run.SpeedBreaches != 0 || run.AccelBreaches != 0 {
			t.Fatalf("reporter saw breaches: %+v", run)
		}
	}
}

func TestWorld_ShooterReceivesDroneAndUnitDirection(t *testing.T) {
	var calls int
	var gotDrone *Drone
	var gotDir r2.Point
	cfg := DefaultConfig()
	cfg.Drone.DetectRange = 500
	w, err := NewWorld(cfg, WithShooter(ShooterFunc(func(d *Drone, dir r2.Point) {
		calls++
		gotDrone, gotDir = d, dir
	})))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	for i := range w.Enemies {
		w.KillEnemy(i)
	}
	// Park an enemy right next to drone 0.
	d0 := &w.Player.Drones[0]
	if _, err := w.SpawnEnemy(d0.Center().Add(vmath.Vec(30, 0)), 16); err != nil {
		t.Fatalf("SpawnEnemy: %v", err)
	}
	for i := 0; i < 61 && calls == 0; i++ {
		w.Tick(Intent{}, dt60)
	}
	if calls == 0 {
		t.Fatal("drone never fired")
	}
	if gotDrone == nil || !gotDrone.Alive {
		t.Fatal("shooter should receive the live firing drone")
	}
	if math.Abs(gotDir.Norm()-1) > 1e-9 {
		t.Fatalf("direction should be a unit vector, got %v (|%.6f|)", gotDir, gotDir.Norm())
	}
	if w.ShotsFired() != calls {
		t.Fatalf("ShotsFired=%d, shooter calls=%d", w.ShotsFired(), calls)
	}
	if !w.SimLog().HasEntry("shot", "fired", "enemy=") {
		t.Fatal("shot should be recorded in the sim log")
	}
}
