package sim

import (
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// Body is the kinematic state shared by the player ship and the drones.
// Velocity and acceleration are only bounded by clamping in Integrate.
type Body struct {
	Pos r2.Point
	Vel r2.Point
	Acc r2.Point

	Dampening   float64 // [0,1), applied per tick while coasting
	MaxVelocity float64
	MaxAccel    float64
}

// Coast decays velocity by the dampening coefficient.
func (b *Body) Coast() {
	b.Vel = b.Vel.Mul(b.Dampening)
}

// Drive applies a thrust of magnitude mag along dir. A persistent body adds
// the thrust to its running acceleration; otherwise it replaces it. With no
// direction a non-persistent body drops its acceleration and coasts, while a
// persistent body is left untouched.
func (b *Body) Drive(dir r2.Point, mag float64, persistent bool) {
	if vmath.IsDegenerate(dir) {
		if !persistent {
			b.Acc = r2.Point{}
			b.Coast()
		}
		return
	}
	thrust := vmath.Normalize(dir).Mul(mag)
	if persistent {
		b.Acc = b.Acc.Add(thrust)
		return
	}
	b.Acc = thrust
}

// Integrate advances the body by dt. The clamp order is fixed:
// acceleration, velocity += a*dt, velocity, position += v*dt.
func (b *Body) Integrate(dt float64) {
	b.Acc = vmath.ClampMagnitude(b.Acc, 0, b.MaxAccel)
	b.Vel = b.Vel.Add(b.Acc.Mul(dt))
	b.Vel = vmath.ClampMagnitude(b.Vel, 0, b.MaxVelocity)
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

// Speed is |velocity|.
func (b *Body) Speed() float64 { return b.Vel.Norm() }

// AccelMagnitude is |acceleration|.
func (b *Body) AccelMagnitude() float64 { return b.Acc.Norm() }
