package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// simSpeeds are the selectable speed multipliers. 0 is paused.
var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// readIntent maps held movement keys to an Intent. WASD and the arrow keys
// are equivalent.
func readIntent(pressed func(ebiten.Key) bool) sim.Intent {
	return sim.Intent{
		Left:    pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft),
		Back:    pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown),
		Right:   pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight),
		Forward: pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp),
	}
}

// slowerSpeed returns the next multiplier below cur, or cur at the bottom.
func slowerSpeed(cur float64) float64 {
	for i := len(simSpeeds) - 1; i >= 0; i-- {
		if simSpeeds[i] < cur {
			return simSpeeds[i]
		}
	}
	return cur
}

// fasterSpeed returns the next multiplier above cur, or cur at the top.
func fasterSpeed(cur float64) float64 {
	for _, s := range simSpeeds {
		if s > cur {
			return s
		}
	}
	return cur
}

// speedLabel renders a multiplier for the HUD.
func speedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 0.5:
		return "0.5x"
	case 1:
		return "1x"
	case 2:
		return "2x"
	case 4:
		return "4x"
	}
	return "?"
}
