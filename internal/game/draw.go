package game

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// facingArcMinDeg is the narrowest facing wedge drawn around a drone.
const facingArcMinDeg = 20.0

var (
	colPlayer    = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	colHitbox    = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	colVelocity  = color.RGBA{R: 240, G: 220, B: 80, A: 220}
	colDrone     = color.RGBA{R: 80, G: 140, B: 230, A: 255}
	colTether    = color.RGBA{R: 80, G: 140, B: 230, A: 90}
	colFacing    = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	colTarget    = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	colEnemy     = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	colBandFar   = color.RGBA{R: 230, G: 120, B: 60, A: 255}
	colBandNear  = color.RGBA{R: 200, G: 80, B: 200, A: 255}
	colGroundBG  = color.RGBA{R: 22, G: 26, B: 22, A: 255}
	colGroundGrd = color.RGBA{R: 34, G: 40, B: 34, A: 255}
)

// drawWorld renders the playfield. Coordinates are world-space.
func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colGroundBG)
	drawGrid(screen, g.fieldW, g.fieldH, 40, colGroundGrd)

	w := g.world
	for i := range w.Enemies {
		if e := &w.Enemies[i]; e.Alive {
			drawHexagon(screen, e.Position, e.Size, colEnemy)
		}
	}

	p := &w.Player
	pc := p.Center()
	for i := range p.Drones {
		d := &p.Drones[i]
		if !d.Alive {
			continue
		}
		dc := d.Center()
		if g.showDebug {
			vector.StrokeLine(screen, f32(dc.X), f32(dc.Y), f32(pc.X), f32(pc.Y), 1.0, colTether, false)
			if t := d.Target(); t >= 0 && t < len(w.Enemies) && w.Enemies[t].Alive {
				ep := w.Enemies[t].Position
				vector.StrokeLine(screen, f32(dc.X), f32(dc.Y), f32(ep.X), f32(ep.Y), 1.0, colTarget, false)
			}
		}
		drawFacingArc(screen, dc, d.Size/2+3, d.FacingAngle, facingArcMinDeg)
		vector.FillRect(screen, f32(d.Pos.X), f32(d.Pos.Y), f32(d.Size), f32(d.Size), bandColor(d.Band()), false)
	}

	vector.FillRect(screen, f32(p.Pos.X), f32(p.Pos.Y), f32(p.Size), f32(p.Size), colPlayer, false)
	if g.showDebug {
		hb := p.Hitbox()
		vector.StrokeRect(screen, f32(hb.X.Lo), f32(hb.Y.Lo), f32(hb.X.Length()), f32(hb.Y.Length()), 1.0, colHitbox, false)
		tip := pc.Add(p.Vel.Mul(0.1))
		vector.StrokeLine(screen, f32(pc.X), f32(pc.Y), f32(tip.X), f32(tip.Y), 2.0, colVelocity, false)
	}

	g.tracers.Draw(screen, 0, 0)
}

// bandColor tints a drone by its current band.
func bandColor(b sim.Band) color.RGBA {
	switch b {
	case sim.BandFar:
		return colBandFar
	case sim.BandNear:
		return colBandNear
	}
	return colDrone
}

// drawHexagon strokes a regular hexagon of circumradius r around c.
func drawHexagon(screen *ebiten.Image, c r2.Point, r float64, col color.Color) {
	pts := hexagonPoints(c, r)
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, f32(a.X), f32(a.Y), f32(b.X), f32(b.Y), 1.0, col, true)
	}
}

// hexagonPoints returns the six corners, the first on the +X axis.
func hexagonPoints(c r2.Point, r float64) [6]r2.Point {
	var pts [6]r2.Point
	for i := range pts {
		a := float64(i) * math.Pi / 3
		pts[i] = r2.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// drawFacingArc fills a thin wedge ring at radius r centered on the facing
// angle. Arcs narrower than minDeg are widened to minDeg.
func drawFacingArc(screen *ebiten.Image, c r2.Point, r, facing, arcDeg float64) {
	if arcDeg < facingArcMinDeg {
		arcDeg = facingArcMinDeg
	}
	half := arcDeg * math.Pi / 180 / 2
	const steps = 8
	const thickness = 2.0

	var path vector.Path
	for i := 0; i <= steps; i++ {
		a := facing - half + 2*half*float64(i)/steps
		x, y := c.X+(r+thickness)*math.Cos(a), c.Y+(r+thickness)*math.Sin(a)
		if i == 0 {
			path.MoveTo(f32(x), f32(y))
		} else {
			path.LineTo(f32(x), f32(y))
		}
	}
	for i := steps; i >= 0; i-- {
		a := facing - half + 2*half*float64(i)/steps
		path.LineTo(f32(c.X+r*math.Cos(a)), f32(c.Y+r*math.Sin(a)))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(colFacing)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func drawGrid(screen *ebiten.Image, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	for x := 0; x <= w; x += spacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1.0, c, false)
	}
}

func f32(v float64) float32 { return float32(v) }
