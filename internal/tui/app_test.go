package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

func newTestApp(t *testing.T, cfg sim.Config) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)
	a, err := New(screen, cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y, cols int) string {
	var sb strings.Builder
	for x := 0; x < cols; x++ {
		sb.WriteRune(runeAt(s, x, y))
	}
	return sb.String()
}

func TestViewport_Cell(t *testing.T) {
	vp := Viewport{FieldW: 800, FieldH: 450, Cols: 80, Rows: 24}
	if x, y, ok := vp.Cell(r2.Point{X: 400, Y: 416}); !ok || x != 40 || y != 22 {
		t.Fatalf("cell = (%d,%d,%t), want (40,22,true)", x, y, ok)
	}
	if _, _, ok := vp.Cell(r2.Point{X: 800, Y: 10}); ok {
		t.Fatal("right edge should be off-grid")
	}
	if _, _, ok := vp.Cell(r2.Point{X: -1, Y: 10}); ok {
		t.Fatal("negative coordinates should be off-grid")
	}
}

func TestApp_DrawPlacesEntities(t *testing.T) {
	a, screen := newTestApp(t, sim.DefaultConfig())
	a.draw()

	if r := runeAt(screen, 40, 22); r != '@' {
		t.Fatalf("player cell holds %q, want '@'", r)
	}
	// Enemy 0 at (200,200).
	if r := runeAt(screen, 20, 10); r != 'X' {
		t.Fatalf("enemy cell holds %q, want 'X'", r)
	}
	if status := rowText(screen, 24, 80); !strings.Contains(status, "T=0") || !strings.Contains(status, "enemies=10") {
		t.Fatalf("status line = %q", status)
	}
}

func TestApp_StepClampsAndPauses(t *testing.T) {
	a, _ := newTestApp(t, sim.DefaultConfig())
	t0 := time.Unix(1000, 0)
	a.last = t0

	a.keys.Press(tcell.KeyRune, 'd', t0.Add(time.Second))
	a.step(t0.Add(time.Second))
	if a.World().TickCount() != 1 {
		t.Fatalf("tick = %d, want 1", a.World().TickCount())
	}
	// One clamped 0.1s step from rest: v = 2500*0.1, p += v*0.1.
	if dx := a.World().Player.Pos.X - 384; dx < 24.9 || dx > 25.1 {
		t.Fatalf("player moved %.3f, want 25 (dt clamped to 0.1s)", dx)
	}

	a.step(t0.Add(time.Second))
	if a.World().TickCount() != 1 {
		t.Fatal("zero dt should not tick")
	}

	a.paused = true
	a.step(t0.Add(2 * time.Second))
	if a.World().TickCount() != 1 {
		t.Fatal("paused app should not tick")
	}
}

func TestApp_ShotLeavesFlash(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Drone.DetectRange = 500
	a, _ := newTestApp(t, cfg)
	d := &a.World().Player.Drones[0]
	d.FramesSinceShotFired = d.ShotCooldownFrames

	t0 := time.Unix(1000, 0)
	a.last = t0
	a.step(t0.Add(16 * time.Millisecond))
	if a.World().ShotsFired() == 0 || len(a.flashes) == 0 {
		t.Fatalf("expected a shot flash, shots=%d flashes=%d", a.World().ShotsFired(), len(a.flashes))
	}
	for i := 1; i <= flashFrames; i++ {
		a.step(t0.Add(time.Duration(16*(i+1)) * time.Millisecond))
	}
	if len(a.flashes) != 0 {
		t.Fatalf("flashes should expire, %d left", len(a.flashes))
	}
}
