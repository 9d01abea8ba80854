package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/drone-escort/internal/sim"
)

func TestScenarios_Inputs(t *testing.T) {
	if scenarios["idle"](100) != (sim.Intent{}) {
		t.Fatal("idle should never move")
	}
	orbit := scenarios["orbit"]
	if !orbit(0).Right || !orbit(60).Forward || !orbit(120).Left || !orbit(180).Back || !orbit(240).Right {
		t.Fatal("orbit should cycle right, forward, left, back each second")
	}
	sweep := scenarios["sweep"]
	if !sweep(1).Forward || sweep(20) != (sim.Intent{}) || !sweep(41).Left || !sweep(56).Right || !sweep(86).Left {
		t.Fatal("sweep should advance, coast, then strafe left and right")
	}
	if got := scenarioNames(); got != "idle|orbit|sweep" {
		t.Fatalf("scenario names = %q", got)
	}
}

func TestRunScenario_UnknownScenario(t *testing.T) {
	if _, err := runScenario(sim.DefaultConfig(), "dance", 1, 1, 10, false); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestRunScenario_DeterministicPerSeed(t *testing.T) {
	a, err := runScenario(sim.DefaultConfig(), "sweep", 1, 7, 600, false)
	if err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	b, _ := runScenario(sim.DefaultConfig(), "sweep", 2, 7, 600, false)
	if a.report != b.report || a.bandChanges != b.bandChanges {
		t.Fatalf("same seed should give the same report:\n%s\nvs\n%s", a.report.Format(), b.report.Format())
	}
	if a.report.Ticks != 600 {
		t.Fatalf("ticks = %d, want 600", a.report.Ticks)
	}
	if a.report.SpeedBreaches != 0 || a.report.AccelBreaches != 0 {
		t.Fatalf("invariant breaches in sweep: %+v", a.report)
	}
}

func TestRunScenario_Dump(t *testing.T) {
	rs, err := runScenario(sim.DefaultConfig(), "idle", 1, 1, 30, true)
	if err != nil {
		t.Fatalf("runScenario: %v", err)
	}
	if !strings.Contains(rs.dump, "debug report") || !strings.Contains(rs.dump, "tick=30") {
		t.Fatalf("dump missing header:\n%s", rs.dump)
	}
	if rs.report.Shots != 0 {
		t.Fatalf("idle drones near the spawn point should not reach the enemy line, got %d shots", rs.report.Shots)
	}
}

func TestAggregateHelpers(t *testing.T) {
	if avg(10, 4) != 2.5 || avg(3, 0) != 0 {
		t.Fatal("avg")
	}
	if avgTickString(nil) != "n/a" || avgTickString([]int{60, 62}) != "61.0" {
		t.Fatal("avgTickString")
	}
	if got := joinCounts(map[string]int{"D1": 2, "D0": 5}); got != "D0=5,D1=2" {
		t.Fatalf("joinCounts = %q", got)
	}
	if countContaining([]sim.SimLogEntry{{Value: "hold → far"}, {Value: "far → hold"}}, "→ far") != 1 {
		t.Fatal("countContaining")
	}
}
