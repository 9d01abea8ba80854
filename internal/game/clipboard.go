package game

import (
	"github.com/atotto/clipboard"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// statusFrames is how long a transient HUD message stays up (~2s).
const statusFrames = 120

// copyDebugReport puts the current world report on the system clipboard.
func (g *Game) copyDebugReport() {
	report := sim.DebugReport(g.world, 0)
	if err := g.writeClipboard(report); err != nil {
		g.logger.Warn("copy debug report", "error", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.logger.Info("debug report copied", "tick", g.world.TickCount(), "bytes", len(report))
	g.setStatus("debug report copied")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusFrames = statusFrames
}

// systemClipboard is the default clipboard writer.
func systemClipboard(s string) error {
	return clipboard.WriteAll(s)
}
