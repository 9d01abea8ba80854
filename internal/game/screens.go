package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenKind is the active top-level screen.
type screenKind int

const (
	screenLogo screenKind = iota
	screenTitle
	screenGameplay
	screenEnding
)

func (s screenKind) String() string {
	switch s {
	case screenLogo:
		return "logo"
	case screenTitle:
		return "title"
	case screenGameplay:
		return "gameplay"
	case screenEnding:
		return "ending"
	}
	return "unknown"
}

// screenInput is what the screen flow needs from one frame.
type screenInput struct {
	frames       int // frames spent on the current screen
	logoFrames   int
	enter        bool
	escape       bool
	enemiesAlive int
}

// nextScreen returns the screen to show after this frame.
func nextScreen(cur screenKind, in screenInput) screenKind {
	switch cur {
	case screenLogo:
		if in.frames >= in.logoFrames {
			return screenTitle
		}
	case screenTitle:
		if in.enter {
			return screenGameplay
		}
	case screenGameplay:
		if in.escape || in.enemiesAlive == 0 {
			return screenEnding
		}
	case screenEnding:
		if in.enter {
			return screenTitle
		}
	}
	return cur
}

func (g *Game) drawLogo(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 8, A: 255})
	alpha := 1.0
	if g.cfg.Screen.LogoFrames > 0 {
		alpha = float64(g.frames) / float64(g.cfg.Screen.LogoFrames)
		if alpha > 1 {
			alpha = 1
		}
	}
	g.drawCentered(screen, "DRONE ESCORT", float64(g.fieldH)/2-20, 3,
		color.RGBA{R: uint8(200 * alpha), G: uint8(200 * alpha), B: uint8(200 * alpha), A: 255})
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 20, B: 14, A: 255})
	g.drawCentered(screen, "DRONE ESCORT", float64(g.fieldH)/3, 3, color.RGBA{R: 120, G: 230, B: 120, A: 255})
	g.drawCentered(screen, "press ENTER", float64(g.fieldH)/2+20, 1.5, color.White)
	g.drawCentered(screen, fmt.Sprintf("%d drones  %d enemies  far band: %s",
		g.cfg.Drone.Count, g.cfg.Enemy.Count, g.cfg.Drone.FarBand), float64(g.fieldH)-40, 1, color.Gray{Y: 160})
}

func (g *Game) drawEnding(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 12, B: 12, A: 255})
	title := "MISSION ABORTED"
	if g.lastRound.enemiesLeft == 0 {
		title = "AREA CLEAR"
	}
	g.drawCentered(screen, title, float64(g.fieldH)/3, 3, color.RGBA{R: 230, G: 200, B: 120, A: 255})
	g.drawCentered(screen, fmt.Sprintf("ticks %d  shots %d  enemies left %d",
		g.lastRound.ticks, g.lastRound.shots, g.lastRound.enemiesLeft), float64(g.fieldH)/2+10, 1.5, color.White)
	g.drawCentered(screen, "press ENTER", float64(g.fieldH)-50, 1, color.Gray{Y: 160})
}
