package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/drone-escort/internal/sim"
)

// defaultHold is how long a key counts as held after its last press or
// auto-repeat. Terminals send no key-up events, so holding is inferred from
// the repeat stream.
const defaultHold = 150 * time.Millisecond

type direction int

const (
	dirLeft direction = iota
	dirBack
	dirRight
	dirForward
	dirCount
)

// KeyTracker turns press events into a held-key Intent.
type KeyTracker struct {
	hold time.Duration
	last [dirCount]time.Time
}

// NewKeyTracker creates a tracker. A non-positive hold uses the default.
func NewKeyTracker(hold time.Duration) *KeyTracker {
	if hold <= 0 {
		hold = defaultHold
	}
	return &KeyTracker{hold: hold}
}

// Press records a key event at now. It reports whether the key was a
// movement key.
func (kt *KeyTracker) Press(key tcell.Key, r rune, now time.Time) bool {
	dir, ok := movementKey(key, r)
	if !ok {
		return false
	}
	kt.last[dir] = now
	return true
}

// Intent returns the directions pressed within the hold window.
func (kt *KeyTracker) Intent(now time.Time) sim.Intent {
	held := func(d direction) bool {
		return !kt.last[d].IsZero() && now.Sub(kt.last[d]) <= kt.hold
	}
	return sim.Intent{
		Left:    held(dirLeft),
		Back:    held(dirBack),
		Right:   held(dirRight),
		Forward: held(dirForward),
	}
}

// Release forgets every held key.
func (kt *KeyTracker) Release() {
	kt.last = [dirCount]time.Time{}
}

func movementKey(key tcell.Key, r rune) (direction, bool) {
	switch key {
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyDown:
		return dirBack, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyUp:
		return dirForward, true
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return dirLeft, true
		case 's', 'S':
			return dirBack, true
		case 'd', 'D':
			return dirRight, true
		case 'w', 'W':
			return dirForward, true
		}
	}
	return 0, false
}
