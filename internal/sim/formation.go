package sim

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// FormationType identifies how the initial drones are laid out around the player.
type FormationType int

const (
	FormationEchelon FormationType = iota // diagonal, each drone one step down-right
	FormationLine                         // side by side, alternating left/right
	FormationColumn                       // single file below the player
	FormationRing                         // evenly spaced on a circle
)

func (ft FormationType) String() string {
	switch ft {
	case FormationEchelon:
		return "echelon"
	case FormationLine:
		return "line"
	case FormationColumn:
		return "column"
	case FormationRing:
		return "ring"
	default:
		return "unknown"
	}
}

// ParseFormation maps a config name to a FormationType.
func ParseFormation(name string) (FormationType, error) {
	for _, ft := range []FormationType{FormationEchelon, FormationLine, FormationColumn, FormationRing} {
		if ft.String() == name {
			return ft, nil
		}
	}
	return 0, fmt.Errorf("drone.formation: unknown formation %q", name)
}

// formationOffsets returns the world offsets from the player's position for
// `count` drones. Slot 0 of an echelon sits on the player, matching how the
// first escort is launched.
func formationOffsets(ft FormationType, count int, spacing float64) []r2.Point {
	offsets := make([]r2.Point, count)
	if count == 0 {
		return offsets
	}

	switch ft {
	case FormationEchelon:
		for i := range offsets {
			offsets[i] = r2.Point{X: float64(i) * spacing, Y: float64(i) * spacing}
		}

	case FormationLine:
		// ...-2,-1,0,+1,+2,...
		for i := 1; i < count; i++ {
			side := float64((i+1)/2) * spacing
			if i%2 == 1 {
				side = -side
			}
			offsets[i] = r2.Point{X: side}
		}

	case FormationColumn:
		for i := range offsets {
			offsets[i] = r2.Point{Y: float64(i+1) * spacing}
		}

	case FormationRing:
		// Radius chosen so neighbours are `spacing` apart along the chord.
		radius := spacing
		if count > 1 {
			radius = spacing / (2 * math.Sin(math.Pi/float64(count)))
		}
		for i := range offsets {
			a := 2 * math.Pi * float64(i) / float64(count)
			offsets[i] = r2.Point{X: math.Cos(a) * radius, Y: math.Sin(a) * radius}
		}
	}
	return offsets
}
