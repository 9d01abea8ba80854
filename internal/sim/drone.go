package sim

import (
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// Band is the distance range a drone occupies relative to the player.
// It is derived every tick and never set directly.
type Band int

const (
	BandHold Band = iota // between min and max distance: coast and settle
	BandFar              // beyond max distance: pull toward the player
	BandNear             // inside min distance: push away from the player
)

func (b Band) String() string {
	switch b {
	case BandHold:
		return "hold"
	case BandFar:
		return "far"
	case BandNear:
		return "near"
	default:
		return "unknown"
	}
}

// classifyBand picks the band for a drone at distance d. Comparisons are
// strict, so a drone sitting exactly on a threshold holds.
func classifyBand(d, minDist, maxDist float64) Band {
	switch {
	case d > maxDist:
		return BandFar
	case d < minDist:
		return BandNear
	default:
		return BandHold
	}
}

// Drone is an escort unit owned by the player.
type Drone struct {
	Body
	Alive bool
	Size  float64
	Jerk  float64

	PlayerMinDistance float64
	PlayerMaxDistance float64

	FacingAngle float64 // radians, smoothed separately from velocity
	DetectRange float64

	FramesSinceShotFired int
	ShotCooldownFrames   int

	band   Band
	target int // enemy slot of the last shot, -1 for none
}

// NewDrone builds a live drone at pos from the configured defaults.
func NewDrone(cfg DroneConfig, pos r2.Point) Drone {
	return Drone{
		Body: Body{
			Pos:         pos,
			Dampening:   cfg.Dampening,
			MaxVelocity: cfg.MaxVelocity,
			MaxAccel:    cfg.MaxAccel,
		},
		Alive:              true,
		Size:               cfg.Size,
		Jerk:               cfg.Jerk,
		PlayerMinDistance:  cfg.PlayerMinDistance,
		PlayerMaxDistance:  cfg.PlayerMaxDistance,
		DetectRange:        cfg.DetectRange,
		ShotCooldownFrames: cfg.ShotCooldownFrames,
		target:             -1,
	}
}

// Center is the middle of the drone's footprint.
func (d *Drone) Center() r2.Point {
	return vmath.Center(d.Pos, d.Size)
}

// CanShoot reports whether the cooldown has elapsed.
func (d *Drone) CanShoot() bool {
	return d.FramesSinceShotFired > d.ShotCooldownFrames
}

// Band is the band chosen on the last steering pass.
func (d *Drone) Band() Band { return d.band }

// Target is the enemy slot the drone last fired at, or -1.
func (d *Drone) Target() int { return d.target }

// Steer applies the band policy for one tick against the player's center. It
// only adjusts acceleration and velocity; Integrate runs afterwards so other
// forces can be added in between.
func (d *Drone) Steer(playerCenter r2.Point, fb FarBandModel, dt float64) Band {
	center := d.Center()
	dist := vmath.Distance(playerCenter, center)
	toPlayer := vmath.Normalize(playerCenter.Sub(center))

	band := classifyBand(dist, d.PlayerMinDistance, d.PlayerMaxDistance)
	switch band {
	case BandFar:
		d.Drive(toPlayer, d.Jerk*fb.JerkScale*dist*dt, true)
		align := toPlayer.Dot(vmath.Normalize(d.Vel))
		d.Vel = d.Vel.Mul(align*fb.AlignBlend + (1 - fb.AlignBlend))
	case BandNear:
		d.Drive(toPlayer.Mul(-1), d.Jerk*dt, true)
	default:
		d.Acc = d.Acc.Mul(d.Dampening)
		d.Vel = d.Vel.Mul(d.Dampening)
	}
	d.band = band
	return band
}
