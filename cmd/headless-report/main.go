package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// enemyJitterPx scatters the enemy line per seed so runs differ.
const enemyJitterPx = 12

type runStats struct {
	runIndex int
	seed     int64

	report      sim.RunReport
	bandChanges int
	farEntries  int
	windowShots int
	perDrone    map[string]int // shots per drone label
	dump        string
}

// scenarios maps a name to its scripted player input.
var scenarios = map[string]func(tick int) sim.Intent{
	"idle": func(int) sim.Intent { return sim.Intent{} },
	// orbit drives the player around a square, one side per second.
	"orbit": func(tick int) sim.Intent {
		switch (tick / 60) % 4 {
		case 0:
			return sim.Intent{Right: true}
		case 1:
			return sim.Intent{Forward: true}
		case 2:
			return sim.Intent{Left: true}
		default:
			return sim.Intent{Back: true}
		}
	},
	// sweep closes on the enemy line, coasts to a stop, then strafes along
	// it. The first strafe leg is half length so the legs stay centered.
	"sweep": func(tick int) sim.Intent {
		switch {
		case tick <= 12:
			return sim.Intent{Forward: true}
		case tick <= 40:
			return sim.Intent{}
		case ((tick-41+15)/30)%2 == 0:
			return sim.Intent{Left: true}
		default:
			return sim.Intent{Right: true}
		}
	},
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for k := range scenarios {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string
	var farBand string
	var dump bool
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "sweep", "scenario name ("+scenarioNames()+")")
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults when empty)")
	flag.StringVar(&farBand, "far-band", "", "far-band variant override (blended|aligned)")
	flag.BoolVar(&dump, "dump", false, "print the debug report at the end of each run")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "headless"})

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if _, ok := scenarios[scenario]; !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, scenarioNames())
		return
	}
	cfg, err := sim.ResolveConfig(configPath, farBand)
	if err != nil {
		logger.Fatal("bad config", "error", err)
	}

	fmt.Printf("=== Headless Drone Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d far_band=%s drones=%d enemies=%d\n\n",
		scenario, runs, ticks, seedBase, seedStep, cfg.Drone.FarBand, cfg.Drone.Count, cfg.Enemy.Count)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runScenario(cfg, scenario, i+1, seed, ticks, dump)
		if err != nil {
			logger.Fatal("run failed", "run", i+1, "seed", seed, "error", err)
		}
		logger.Debug("run complete", "run", i+1, "shots", stats.report.Shots)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(cfg sim.Config, scenario string, runIndex int, seed int64, ticks int, dump bool) (runStats, error) {
	script, ok := scenarios[scenario]
	if !ok {
		return runStats{}, fmt.Errorf("unsupported scenario %q", scenario)
	}
	ts, err := sim.NewTestSim(
		sim.WithConfig(cfg),
		sim.WithSeed(seed),
		sim.WithEnemyJitter(enemyJitterPx),
		sim.WithInput(script),
	)
	if err != nil {
		return runStats{}, err
	}
	ts.RunTicks(ticks)

	perDrone := map[string]int{}
	for _, e := range ts.SimLog.Filter("shot", "fired") {
		perDrone[e.Unit]++
	}
	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		report:      ts.Reporter.Run(),
		bandChanges: ts.SimLog.CountCategory("band", "change"),
		farEntries:  countContaining(ts.SimLog.Filter("band", "change"), "→ far"),
		windowShots: ts.Reporter.WindowShots(),
		perDrone:    perDrone,
	}
	if dump {
		rs.dump = sim.DebugReport(ts.World, 0)
	}
	return rs, nil
}

func countContaining(entries []sim.SimLogEntry, substr string) int {
	n := 0
	for _, e := range entries {
		if strings.Contains(e.Value, substr) {
			n++
		}
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(rs.report.Format())
	fmt.Printf("band_changes=%d far_entries=%d window_shots=%d\n", rs.bandChanges, rs.farEntries, rs.windowShots)
	fmt.Printf("shots_by_drone: %s\n", joinCounts(rs.perDrone))
	if rs.dump != "" {
		fmt.Print(rs.dump)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalBandChanges := 0
	totalSpeedBreaches := 0
	totalAccelBreaches := 0
	firstShotTicks := make([]int, 0, len(all))
	var bandShare [3]float64
	var meanDist, maxDist, maxSpeed, maxAccel float64

	for _, rs := range all {
		r := rs.report
		totalShots += r.Shots
		totalBandChanges += rs.bandChanges
		totalSpeedBreaches += r.SpeedBreaches
		totalAccelBreaches += r.AccelBreaches
		if r.FirstShotTick >= 0 {
			firstShotTicks = append(firstShotTicks, r.FirstShotTick)
		}
		for b := sim.BandHold; b <= sim.BandNear; b++ {
			bandShare[b] += r.BandShare(b)
		}
		meanDist += r.MeanDistance
		if r.MaxDistance > maxDist {
			maxDist = r.MaxDistance
		}
		if r.MaxDroneSpeed > maxSpeed {
			maxSpeed = r.MaxDroneSpeed
		}
		if r.MaxDroneAccel > maxAccel {
			maxAccel = r.MaxDroneAccel
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("avg_per_run: shots=%.1f band_changes=%.1f first_shot=%s\n",
		avg(totalShots, n), avg(totalBandChanges, n), avgTickString(firstShotTicks))
	if n > 0 {
		fmt.Printf("avg_band_share: hold=%.0f%% far=%.0f%% near=%.0f%%\n",
			bandShare[sim.BandHold]/float64(n)*100, bandShare[sim.BandFar]/float64(n)*100, bandShare[sim.BandNear]/float64(n)*100)
		fmt.Printf("player_distance: avg_mean=%.1f max=%.1f\n", meanDist/float64(n), maxDist)
	}
	fmt.Printf("max_drone: speed=%.1f accel=%.1f\n", maxSpeed, maxAccel)
	if totalSpeedBreaches > 0 || totalAccelBreaches > 0 {
		fmt.Printf("INVARIANT BREACH: speed=%d accel=%d\n", totalSpeedBreaches, totalAccelBreaches)
	} else {
		fmt.Println("invariants: ok")
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, k := range labels {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ",")
}
