package sim

import (
	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// separationPush sums the nudges drone i receives from every other live drone
// whose center lies within 2*size+padding. centers must be the snapshot taken
// before any drone moved this tick, so the result does not depend on roster
// order. Coincident centers have no direction and contribute nothing.
func separationPush(i int, centers []r2.Point, alive []bool, size float64, sc SeparationConfig) r2.Point {
	radius := 2*size + sc.Padding
	var push r2.Point
	for j := range centers {
		if j == i || !alive[j] {
			continue
		}
		away := centers[i].Sub(centers[j])
		if away.Norm() >= radius || vmath.IsDegenerate(away) {
			continue
		}
		push = push.Add(vmath.Normalize(away).Mul(sc.Strength))
	}
	return push
}
