package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

func TestKeyTracker_HoldWindow(t *testing.T) {
	kt := NewKeyTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	if !kt.Press(tcell.KeyRune, 'd', t0) {
		t.Fatal("d should be a movement key")
	}
	kt.Press(tcell.KeyUp, 0, t0.Add(50*time.Millisecond))

	if got := kt.Intent(t0.Add(90 * time.Millisecond)); got != (sim.Intent{Right: true, Forward: true}) {
		t.Fatalf("both keys should be held, got %+v", got)
	}
	if got := kt.Intent(t0.Add(120 * time.Millisecond)); got != (sim.Intent{Forward: true}) {
		t.Fatalf("d should have expired, got %+v", got)
	}
	if got := kt.Intent(t0.Add(200 * time.Millisecond)); got != (sim.Intent{}) {
		t.Fatalf("everything should have expired, got %+v", got)
	}
}

func TestKeyTracker_RepeatExtendsHold(t *testing.T) {
	kt := NewKeyTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	for i := 0; i < 5; i++ {
		kt.Press(tcell.KeyRune, 'a', t0.Add(time.Duration(i)*80*time.Millisecond))
	}
	if !kt.Intent(t0.Add(400 * time.Millisecond)).Left {
		t.Fatal("auto-repeat should keep the key held")
	}
	kt.Release()
	if kt.Intent(t0.Add(400*time.Millisecond)) != (sim.Intent{}) {
		t.Fatal("release should clear held keys")
	}
}

func TestKeyTracker_IgnoresOtherKeys(t *testing.T) {
	kt := NewKeyTracker(0)
	now := time.Unix(1000, 0)
	if kt.Press(tcell.KeyRune, 'p', now) || kt.Press(tcell.KeyEnter, 0, now) {
		t.Fatal("non-movement keys should not register")
	}
	if kt.Intent(now) != (sim.Intent{}) {
		t.Fatal("no direction should be held")
	}
	for _, tc := range []struct {
		key  tcell.Key
		r    rune
		want sim.Intent
	}{
		{tcell.KeyLeft, 0, sim.Intent{Left: true}},
		{tcell.KeyDown, 0, sim.Intent{Back: true}},
		{tcell.KeyRune, 'S', sim.Intent{Back: true}},
		{tcell.KeyRune, 'W', sim.Intent{Forward: true}},
	} {
		k := NewKeyTracker(0)
		k.Press(tc.key, tc.r, now)
		if got := k.Intent(now); got != tc.want {
			t.Fatalf("key %v/%q: got %+v, want %+v", tc.key, tc.r, got, tc.want)
		}
	}
}
