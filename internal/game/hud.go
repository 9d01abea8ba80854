package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineH = 14
	hudCharW = 7
	hudPadX  = 6
	hudPadY  = 4
)

// hudFace is the fixed-width face used for every overlay string.
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// hudLines builds the bottom-left status block.
func (g *Game) hudLines() []string {
	w := g.world
	lines := []string{
		fmt.Sprintf("T=%d  SIM: %s  P=pause  ,/. speed", w.TickCount(), speedLabel(g.simSpeed)),
		fmt.Sprintf("drones %d  enemies %d  shots %d", w.Player.AliveDrones(), w.AliveEnemies(), w.ShotsFired()),
		fmt.Sprintf("player speed %.0f/%.0f", w.Player.Speed(), w.Player.MaxVelocity),
		"WASD/arrows=move  G=debug  C=copy report",
		"H=hide HUD  Esc=end",
	}
	if g.statusFrames > 0 && g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

// drawHUD renders the status block in the bottom-left corner of the field.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*hudCharW + hudPadX*2)
	boxH := float32(len(lines)*hudLineH + hudPadY*2)
	bx := float32(4)
	by := float32(g.fieldH) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(screen, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		drawText(screen, line, float64(bx)+hudPadX, float64(by)+hudPadY+float64(i*hudLineH), color.White)
	}
}

// drawText draws s with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.LineSpacing = hudLineH
	text.Draw(screen, s, hudFace, op)
}

// drawCentered draws s centered horizontally on the field at height y,
// scaled by scale.
func (g *Game) drawCentered(screen *ebiten.Image, s string, y, scale float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(g.fieldW)/2, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, hudFace, op)
}
