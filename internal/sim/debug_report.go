package sim

import (
	"fmt"
	"math"
	"strings"
)

// DebugReport renders the current world and the last lastTicks of events as
// plain text, for pasting into bug reports.
func DebugReport(w *World, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := w.TickCount()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- drone escort debug report ---\n")
	fmt.Fprintf(&b, "tick=%d shots=%d far_band=%+v enemies_alive=%d\n",
		toTick, w.ShotsFired(), w.FarBand(), w.AliveEnemies())

	p := &w.Player
	fmt.Fprintf(&b, "player pos=(%.1f,%.1f) vel=(%.1f,%.1f) speed=%.1f/%.0f\n\n",
		p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.Speed(), p.MaxVelocity)

	pc := p.Center()
	for i := range p.Drones {
		d := &p.Drones[i]
		if !d.Alive {
			continue
		}
		fmt.Fprintf(&b, "== %s ==\n", droneLabel(i))
		fmt.Fprintf(&b, "band=%s dist=%.1f [%.0f..%.0f]\n",
			d.Band(), d.Center().Sub(pc).Norm(), d.PlayerMinDistance, d.PlayerMaxDistance)
		fmt.Fprintf(&b, "speed=%.1f/%.0f accel=%.1f/%.0f facing=%.1fdeg\n",
			d.Speed(), d.MaxVelocity, d.AccelMagnitude(), d.MaxAccel, d.FacingAngle*180/math.Pi)
		fmt.Fprintf(&b, "cooldown=%d/%d can_shoot=%t target=%d\n\n",
			d.FramesSinceShotFired, d.ShotCooldownFrames, d.CanShoot(), d.Target())
	}

	events := w.SimLog().FormatRange(fromTick, toTick)
	if events == "" {
		events = "(no events in range)\n"
	}
	fmt.Fprintf(&b, "== events T=%d..%d ==\n%s", fromTick, toTick, events)
	return b.String()
}
