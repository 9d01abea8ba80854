// Package vmath holds the 2D vector helpers shared by the simulation and its
// hosts. All functions are pure and operate on r2.Point values.
package vmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Epsilon is the squared-length threshold below which a vector is treated as
// having no direction.
const Epsilon = 1e-6

// Vec builds a point from its components.
func Vec(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func Add(a, b r2.Point) r2.Point { return a.Add(b) }

func Sub(a, b r2.Point) r2.Point { return a.Sub(b) }

func Scale(v r2.Point, s float64) r2.Point { return v.Mul(s) }

func Dot(a, b r2.Point) float64 { return a.Dot(b) }

func Length(v r2.Point) float64 { return v.Norm() }

func LengthSqr(v r2.Point) float64 { return v.X*v.X + v.Y*v.Y }

// Distance returns the euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// IsDegenerate reports whether v is too short to carry a direction.
func IsDegenerate(v r2.Point) bool {
	return LengthSqr(v) < Epsilon
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged rather than producing NaNs.
func Normalize(v r2.Point) r2.Point {
	l := v.Norm()
	if l == 0 {
		return r2.Point{}
	}
	return v.Mul(1 / l)
}

// ClampMagnitude rescales v so its length lies in [lo, hi]. A zero vector is
// left alone.
func ClampMagnitude(v r2.Point, lo, hi float64) r2.Point {
	l2 := LengthSqr(v)
	if l2 <= 0 {
		return v
	}
	l := math.Sqrt(l2)
	switch {
	case l < lo:
		return v.Mul(lo / l)
	case l > hi:
		return v.Mul(hi / l)
	}
	return v
}

// Angle returns the signed angle in radians that rotates a onto b.
func Angle(a, b r2.Point) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// Lerp blends a toward b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpAngle blends angle a toward b by t along the shorter arc. The result is
// wrapped to [-pi, pi].
func LerpAngle(a, b, t float64) float64 {
	return NormalizeAngle(a + t*NormalizeAngle(b-a))
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// HeadingTo returns the angle in radians from `from` toward `to`
// (0 = +x, pi/2 = +y, screen down).
func HeadingTo(from, to r2.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// FromAngle returns the unit vector for heading a.
func FromAngle(a float64) r2.Point {
	return r2.Point{X: math.Cos(a), Y: math.Sin(a)}
}

// Center offsets a top-left position by half of a square footprint.
func Center(pos r2.Point, size float64) r2.Point {
	return r2.Point{X: pos.X + size/2, Y: pos.Y + size/2}
}
