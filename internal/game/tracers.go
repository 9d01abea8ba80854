package game

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/drone-escort/internal/sim"
)

const (
	tracerLifetime = 10 // ticks a tracer persists
	tracerImpact   = 5  // tick at which the head reaches the target
	flashLifetime  = 4  // ticks a muzzle flash persists
)

// Tracer is a short-lived visual for one drone shot.
type Tracer struct {
	from, to r2.Point
	enemy    int // target slot, -1 when unknown
	age      int // ticks since spawn
}

// Done reports whether the tracer should be removed.
func (t *Tracer) Done() bool {
	return t.age >= tracerLifetime
}

// MuzzleFlash is a short burst at the firing drone.
type MuzzleFlash struct {
	pos   r2.Point
	angle float64
	age   int
}

// Hit is a tracer that reached its target this tick.
type Hit struct {
	Drone int
	Enemy int
}

// TracerSet turns shots into visuals and reports when they land. It
// implements sim.Shooter.
type TracerSet struct {
	tracers []*Tracer
	flashes []*MuzzleFlash
	drones  []int // firing drone slot per tracer

	// enemyAt resolves a target slot to its position.
	enemyAt func(slot int) (r2.Point, bool)
	// slotOf resolves a drone pointer to its roster slot.
	slotOf func(d *sim.Drone) int
}

// NewTracerSet creates a tracer set. Either lookup may be nil.
func NewTracerSet(enemyAt func(int) (r2.Point, bool), slotOf func(*sim.Drone) int) *TracerSet {
	return &TracerSet{enemyAt: enemyAt, slotOf: slotOf}
}

// Shoot records a tracer from the drone toward its target. Without a
// resolvable target the tracer runs out to the detect range.
func (ts *TracerSet) Shoot(d *sim.Drone, dir r2.Point) {
	from := d.Center()
	to := from.Add(dir.Mul(d.DetectRange))
	enemy := d.Target()
	if ts.enemyAt != nil {
		if p, ok := ts.enemyAt(enemy); ok {
			to = p
		} else {
			enemy = -1
		}
	}
	slot := -1
	if ts.slotOf != nil {
		slot = ts.slotOf(d)
	}
	ts.tracers = append(ts.tracers, &Tracer{from: from, to: to, enemy: enemy})
	ts.drones = append(ts.drones, slot)
	ts.flashes = append(ts.flashes, &MuzzleFlash{pos: from, angle: math.Atan2(dir.Y, dir.X)})
}

// Update ages and prunes tracers and flashes, returning the tracers whose
// head reached the target on this tick.
func (ts *TracerSet) Update() []Hit {
	var hits []Hit
	kept := ts.tracers[:0]
	keptDrones := ts.drones[:0]
	for i, t := range ts.tracers {
		t.age++
		if t.age == tracerImpact && t.enemy >= 0 {
			hits = append(hits, Hit{Drone: ts.drones[i], Enemy: t.enemy})
		}
		if !t.Done() {
			kept = append(kept, t)
			keptDrones = append(keptDrones, ts.drones[i])
		}
	}
	ts.tracers = kept
	ts.drones = keptDrones

	keptF := ts.flashes[:0]
	for _, f := range ts.flashes {
		f.age++
		if f.age < flashLifetime {
			keptF = append(keptF, f)
		}
	}
	ts.flashes = keptF
	return hits
}

// Active returns the number of live tracers.
func (ts *TracerSet) Active() int { return len(ts.tracers) }

// Reset drops every tracer and flash.
func (ts *TracerSet) Reset() {
	ts.tracers = ts.tracers[:0]
	ts.drones = ts.drones[:0]
	ts.flashes = ts.flashes[:0]
}

// Draw renders tracers and muzzle flashes, offset by (offX, offY).
func (ts *TracerSet) Draw(screen *ebiten.Image, offX, offY float32) {
	for _, t := range ts.tracers {
		t.draw(screen, offX, offY)
	}
	for _, f := range ts.flashes {
		f.draw(screen, offX, offY)
	}
}

// draw renders the tracer as a short bright head with a fading tail.
func (t *Tracer) draw(screen *ebiten.Image, ox, oy float32) {
	progress := float64(t.age) / float64(tracerLifetime)
	if progress > 1.0 {
		return
	}

	headT := math.Min(1.0, float64(t.age)/float64(tracerImpact))
	tailT := math.Max(0.0, headT-0.25)
	globalFade := float32(1.0 - progress*progress)

	const nSeg = 4
	d := t.to.Sub(t.from)
	for i := 0; i < nSeg; i++ {
		t0 := tailT + (headT-tailT)*float64(i)/float64(nSeg)
		t1 := tailT + (headT-tailT)*float64(i+1)/float64(nSeg)
		p0 := t.from.Add(d.Mul(t0))
		p1 := t.from.Add(d.Mul(t1))
		intensity := float32(i+1) / float32(nSeg)
		a := uint8(float32(220) * intensity * globalFade)
		vector.StrokeLine(screen, ox+float32(p0.X), oy+float32(p0.Y), ox+float32(p1.X), oy+float32(p1.Y), 1.0,
			color.RGBA{R: 120, G: 255, B: 140, A: a}, false)
	}

	head := t.from.Add(d.Mul(headT))
	vector.FillCircle(screen, ox+float32(head.X), oy+float32(head.Y), 1.2,
		color.RGBA{R: 235, G: 255, B: 235, A: uint8(float32(230) * globalFade)}, false)

	if t.enemy >= 0 && t.age >= tracerImpact && t.age <= tracerImpact+1 {
		vector.FillCircle(screen, ox+float32(t.to.X), oy+float32(t.to.Y), 4,
			color.RGBA{R: 255, G: 240, B: 180, A: 200}, false)
	}
}

func (f *MuzzleFlash) draw(screen *ebiten.Image, ox, oy float32) {
	progress := float64(f.age) / float64(flashLifetime)
	alpha := uint8(255 * (1.0 - progress))
	sx, sy := ox+float32(f.pos.X), oy+float32(f.pos.Y)

	glowR := float32(7.0) * float32(1.0-progress*0.6)
	vector.FillCircle(screen, sx, sy, glowR, color.RGBA{R: 140, G: 255, B: 120, A: uint8(float64(alpha) * 0.3)}, false)
	coreR := float32(3.0) * float32(1.0-progress*0.5)
	vector.FillCircle(screen, sx, sy, coreR, color.RGBA{R: 240, G: 255, B: 230, A: alpha}, false)

	lineLen := 10.0 * (1.0 - progress*0.7)
	ex := float32(f.pos.X + math.Cos(f.angle)*lineLen)
	ey := float32(f.pos.Y + math.Sin(f.angle)*lineLen)
	vector.StrokeLine(screen, sx, sy, ox+ex, oy+ey, 1.5,
		color.RGBA{R: 220, G: 255, B: 160, A: uint8(float64(alpha) * 0.7)}, false)
}
