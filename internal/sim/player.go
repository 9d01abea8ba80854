package sim

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// Intent is the per-frame movement request read from four held keys.
type Intent struct {
	Left, Back, Right, Forward bool
}

// Vector converts the held keys into a direction (screen coordinates, +y down).
// Opposing keys cancel out.
func (in Intent) Vector() r2.Point {
	var d r2.Point
	if in.Left {
		d.X--
	}
	if in.Back {
		d.Y++
	}
	if in.Right {
		d.X++
	}
	if in.Forward {
		d.Y--
	}
	return d
}

// Player is the ship the drones escort. It owns the drone roster.
type Player struct {
	Body
	Size         float64
	Acceleration float64 // accel rate applied while a key is held

	// Drones is fixed-length; dead slots stay in place.
	Drones []Drone

	hitbox r2.Rect
}

func newPlayer(cfg PlayerConfig, maxDrones int) Player {
	p := Player{
		Body: Body{
			Pos:         vmath.Vec(cfg.X, cfg.Y),
			Dampening:   cfg.Dampening,
			MaxVelocity: cfg.MaxVelocity,
			MaxAccel:    cfg.Acceleration,
		},
		Size:         cfg.Size,
		Acceleration: cfg.Acceleration,
		Drones:       make([]Drone, maxDrones),
	}
	p.updateHitbox()
	return p
}

// Center is the middle of the ship's footprint.
func (p *Player) Center() r2.Point {
	return vmath.Center(p.Pos, p.Size)
}

// Hitbox is the axis-aligned footprint as of the last update.
func (p *Player) Hitbox() r2.Rect {
	return p.hitbox
}

func (p *Player) updateHitbox() {
	p.hitbox = r2.Rect{
		X: r1.Interval{Lo: p.Pos.X, Hi: p.Pos.X + p.Size},
		Y: r1.Interval{Lo: p.Pos.Y, Hi: p.Pos.Y + p.Size},
	}
}

// Update moves the ship one tick. With no input the ship coasts; otherwise
// acceleration is reset to the input direction times the accel rate.
func (p *Player) Update(in Intent, dt float64) {
	p.Drive(in.Vector(), p.Acceleration, false)
	p.Integrate(dt)
	p.updateHitbox()
}

// AliveDrones counts live roster slots.
func (p *Player) AliveDrones() int {
	n := 0
	for i := range p.Drones {
		if p.Drones[i].Alive {
			n++
		}
	}
	return n
}

// SpawnDrone places d in the first dead slot.
func (p *Player) SpawnDrone(d Drone) (int, error) {
	for i := range p.Drones {
		if !p.Drones[i].Alive {
			d.Alive = true
			d.target = -1
			p.Drones[i] = d
			return i, nil
		}
	}
	return -1, ErrRosterFull
}

// KillDrone marks a slot dead. Out-of-range slots are ignored.
func (p *Player) KillDrone(i int) {
	if i >= 0 && i < len(p.Drones) {
		p.Drones[i].Alive = false
	}
}
