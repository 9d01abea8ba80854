package game

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

func TestHexagonPoints_Regular(t *testing.T) {
	c := r2.Point{X: 10, Y: -5}
	pts := hexagonPoints(c, 16)
	if math.Abs(pts[0].X-26) > 1e-9 || math.Abs(pts[0].Y+5) > 1e-9 {
		t.Fatalf("first corner = %v, want (26,-5)", pts[0])
	}
	for i := range pts {
		if r := pts[i].Sub(c).Norm(); math.Abs(r-16) > 1e-9 {
			t.Fatalf("corner %d at radius %.6f", i, r)
		}
		// A regular hexagon's side equals its circumradius.
		if side := pts[(i+1)%6].Sub(pts[i]).Norm(); math.Abs(side-16) > 1e-9 {
			t.Fatalf("side %d = %.6f, want 16", i, side)
		}
	}
}

func TestBandColor_DistinguishesBands(t *testing.T) {
	if bandColor(sim.BandHold) == bandColor(sim.BandFar) ||
		bandColor(sim.BandFar) == bandColor(sim.BandNear) ||
		bandColor(sim.BandHold) == bandColor(sim.BandNear) {
		t.Fatal("each band should have its own colour")
	}
}
