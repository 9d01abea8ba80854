package sim

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// DroneReport captures one drone at one tick.
type DroneReport struct {
	Slot           int
	Band           Band
	PlayerDistance float64
	Speed          float64
	Accel          float64
	Cooldown       int // frames since last shot
	Target         int
}

// TickReport is a snapshot of the world after one tick.
type TickReport struct {
	Tick         int
	PlayerSpeed  float64
	AliveEnemies int
	Shots        int // cumulative
	Drones       []DroneReport
}

// RunReport aggregates a whole run.
type RunReport struct {
	Ticks         int
	Shots         int
	FirstShotTick int // -1 if nothing fired
	BandTicks     [3]int
	DroneTicks    int
	MeanDistance  float64
	MaxDistance   float64
	MaxDroneSpeed float64
	MaxDroneAccel float64
	MaxPlayerSpd  float64

	// Invariant breaches observed (should stay zero).
	SpeedBreaches int
	AccelBreaches int
}

// BandShare returns the fraction of drone-ticks spent in band b.
func (r RunReport) BandShare(b Band) float64 {
	if r.DroneTicks == 0 {
		return 0
	}
	return float64(r.BandTicks[b]) / float64(r.DroneTicks)
}

// SimReporter collects a snapshot after every tick and keeps both a sliding
// window of recent snapshots and a running aggregate.
type SimReporter struct {
	history     []TickReport
	windowTicks int
	verbose     bool

	run     RunReport
	distSum float64
}

// NewSimReporter creates a reporter keeping the last windowTicks snapshots.
// A non-positive window uses the default.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
		run:         RunReport{FirstShotTick: -1},
	}
}

// Observe records the world's state. World.Tick calls this when a reporter
// is attached.
func (r *SimReporter) Observe(w *World) {
	p := &w.Player
	playerCenter := p.Center()
	tr := TickReport{
		Tick:         w.TickCount(),
		PlayerSpeed:  p.Speed(),
		AliveEnemies: w.AliveEnemies(),
		Shots:        w.ShotsFired(),
	}

	r.run.Ticks = tr.Tick
	r.run.MaxPlayerSpd = math.Max(r.run.MaxPlayerSpd, tr.PlayerSpeed)
	if tr.PlayerSpeed > p.MaxVelocity+1e-9 {
		r.run.SpeedBreaches++
	}
	if r.run.FirstShotTick < 0 && tr.Shots > r.run.Shots {
		r.run.FirstShotTick = tr.Tick
	}
	r.run.Shots = tr.Shots

	for i := range p.Drones {
		d := &p.Drones[i]
		if !d.Alive {
			continue
		}
		dr := DroneReport{
			Slot:           i,
			Band:           d.Band(),
			PlayerDistance: d.Center().Sub(playerCenter).Norm(),
			Speed:          d.Speed(),
			Accel:          d.AccelMagnitude(),
			Cooldown:       d.FramesSinceShotFired,
			Target:         d.Target(),
		}
		tr.Drones = append(tr.Drones, dr)

		r.run.DroneTicks++
		r.run.BandTicks[dr.Band]++
		r.distSum += dr.PlayerDistance
		r.run.MaxDistance = math.Max(r.run.MaxDistance, dr.PlayerDistance)
		r.run.MaxDroneSpeed = math.Max(r.run.MaxDroneSpeed, dr.Speed)
		r.run.MaxDroneAccel = math.Max(r.run.MaxDroneAccel, dr.Accel)
		if dr.Speed > d.MaxVelocity+1e-9 {
			r.run.SpeedBreaches++
		}
		if dr.Accel > d.MaxAccel+1e-9 {
			r.run.AccelBreaches++
		}
	}
	if r.run.DroneTicks > 0 {
		r.run.MeanDistance = r.distSum / float64(r.run.DroneTicks)
	}

	r.history = append(r.history, tr)
	if len(r.history) > r.windowTicks {
		r.history = r.history[len(r.history)-r.windowTicks:]
	}
}

// Run returns the aggregate so far.
func (r *SimReporter) Run() RunReport { return r.run }

// Latest returns the most recent snapshot.
func (r *SimReporter) Latest() (TickReport, bool) {
	if len(r.history) == 0 {
		return TickReport{}, false
	}
	return r.history[len(r.history)-1], true
}

// Window returns the snapshots in the sliding window, oldest first.
func (r *SimReporter) Window() []TickReport { return r.history }

// WindowShots returns how many shots were fired inside the sliding window.
func (r *SimReporter) WindowShots() int {
	if len(r.history) < 2 {
		return 0
	}
	return r.history[len(r.history)-1].Shots - r.history[0].Shots
}

// Format renders the aggregate as a short multi-line summary.
func (r RunReport) Format() string {
	var sb strings.Builder
	first := "never"
	if r.FirstShotTick >= 0 {
		first = fmt.Sprintf("T=%d", r.FirstShotTick)
	}
	fmt.Fprintf(&sb, "ticks=%d shots=%d first_shot=%s\n", r.Ticks, r.Shots, first)
	fmt.Fprintf(&sb, "bands: hold=%.0f%% far=%.0f%% near=%.0f%%\n",
		r.BandShare(BandHold)*100, r.BandShare(BandFar)*100, r.BandShare(BandNear)*100)
	fmt.Fprintf(&sb, "player distance: mean=%.1f max=%.1f\n", r.MeanDistance, r.MaxDistance)
	fmt.Fprintf(&sb, "max speed: drone=%.1f player=%.1f  max accel: drone=%.1f\n",
		r.MaxDroneSpeed, r.MaxPlayerSpd, r.MaxDroneAccel)
	if r.SpeedBreaches > 0 || r.AccelBreaches > 0 {
		fmt.Fprintf(&sb, "INVARIANT BREACH: speed=%d accel=%d\n", r.SpeedBreaches, r.AccelBreaches)
	}
	return sb.String()
}
