package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

var (
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHold   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleFar    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleNear   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Viewport maps the world field onto a grid of terminal cells.
type Viewport struct {
	FieldW, FieldH float64
	Cols, Rows     int
}

// Cell returns the cell containing p, and whether it is on the grid.
func (v Viewport) Cell(p r2.Point) (int, int, bool) {
	if v.Cols <= 0 || v.Rows <= 0 || v.FieldW <= 0 || v.FieldH <= 0 {
		return 0, 0, false
	}
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	x := int(p.X / v.FieldW * float64(v.Cols))
	y := int(p.Y / v.FieldH * float64(v.Rows))
	return x, y, x < v.Cols && y < v.Rows
}

// droneGlyph picks a drone's rune and style from its band.
func droneGlyph(b sim.Band) (rune, tcell.Style) {
	switch b {
	case sim.BandFar:
		return 'O', styleFar
	case sim.BandNear:
		return 'o', styleNear
	}
	return 'o', styleHold
}

// render draws the world into the playfield and status into the last row.
func render(s tcell.Screen, w *sim.World, vp Viewport, flashes []flash, status string) {
	s.Clear()
	put := func(p r2.Point, r rune, st tcell.Style) {
		if x, y, ok := vp.Cell(p); ok {
			s.SetContent(x, y, r, nil, st)
		}
	}

	for i := range w.Enemies {
		if e := &w.Enemies[i]; e.Alive {
			put(e.Position, 'X', styleEnemy)
		}
	}
	for _, f := range flashes {
		put(f.pos, '*', styleShot)
	}
	p := &w.Player
	for i := range p.Drones {
		if d := &p.Drones[i]; d.Alive {
			r, st := droneGlyph(d.Band())
			put(d.Center(), r, st)
		}
	}
	put(p.Center(), '@', stylePlayer)

	row := vp.Rows
	col := 0
	for _, r := range status {
		if col >= vp.Cols {
			break
		}
		s.SetContent(col, row, r, nil, styleStatus)
		col++
	}
	for ; col < vp.Cols; col++ {
		s.SetContent(col, row, ' ', nil, styleStatus)
	}
}
