package vmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalize_ZeroStaysZero(t *testing.T) {
	n := Normalize(r2.Point{})
	if n.X != 0 || n.Y != 0 {
		t.Fatalf("normalize of zero vector should be zero, got %v", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) {
		t.Fatalf("normalize produced NaN")
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	for _, v := range []r2.Point{Vec(3, 4), Vec(-1, 0), Vec(0.001, -0.002), Vec(1e6, 1e6)} {
		if l := Length(Normalize(v)); !near(l, 1) {
			t.Fatalf("normalize(%v) length = %.12f, want 1", v, l)
		}
	}
}

func TestClampMagnitude(t *testing.T) {
	cases := []struct {
		name   string
		v      r2.Point
		lo, hi float64
		want   float64
	}{
		{"inside", Vec(3, 4), 0, 10, 5},
		{"above", Vec(30, 40), 0, 10, 10},
		{"below", Vec(0.3, 0.4), 1, 10, 1},
		{"zero untouched", Vec(0, 0), 1, 10, 0},
	}
	for _, c := range cases {
		got := Length(ClampMagnitude(c.v, c.lo, c.hi))
		if !near(got, c.want) {
			t.Fatalf("%s: length %.6f, want %.6f", c.name, got, c.want)
		}
	}
}

func TestClampMagnitude_KeepsDirection(t *testing.T) {
	v := Vec(-300, 400)
	c := ClampMagnitude(v, 0, 50)
	if !near(Angle(v, c), 0) {
		t.Fatalf("clamp changed direction: %v -> %v", v, c)
	}
}

func TestAngle_FromXAxis(t *testing.T) {
	x := Vec(1, 0)
	if a := Angle(x, Vec(0, 1)); !near(a, math.Pi/2) {
		t.Fatalf("angle to +y = %.4f, want pi/2", a)
	}
	if a := Angle(x, Vec(0, -1)); !near(a, -math.Pi/2) {
		t.Fatalf("angle to -y = %.4f, want -pi/2", a)
	}
	if a := Angle(x, Vec(-1, 1)); !near(a, HeadingTo(Vec(0, 0), Vec(-1, 1))) {
		t.Fatalf("Angle and HeadingTo disagree: %.4f", a)
	}
}

func TestLerpAngle_TakesShortArc(t *testing.T) {
	// 170deg -> -170deg is 20deg across the seam, not 340deg the long way.
	a := 170 * math.Pi / 180
	b := -170 * math.Pi / 180
	got := LerpAngle(a, b, 0.5)
	if math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Fatalf("halfway across the seam should be ±pi, got %.4f", got)
	}
}

func TestLerp(t *testing.T) {
	if v := Lerp(0, 10, 0.1); !near(v, 1) {
		t.Fatalf("lerp(0,10,0.1) = %v", v)
	}
}

func TestIsDegenerate(t *testing.T) {
	if !IsDegenerate(Vec(0, 0)) {
		t.Fatal("zero should be degenerate")
	}
	if IsDegenerate(Vec(0, 1)) {
		t.Fatal("unit vector should not be degenerate")
	}
}

func TestCenter(t *testing.T) {
	c := Center(Vec(384, 400), 32)
	if c.X != 400 || c.Y != 416 {
		t.Fatalf("center = %v, want (400,416)", c)
	}
}
