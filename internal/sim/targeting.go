package sim

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

// Enemy is a passive target.
type Enemy struct {
	Alive    bool
	Position r2.Point // center
	Size     float64
}

// Shooter receives fire events. dir is a unit vector from the drone toward
// its target; d.Target() already names the enemy slot.
type Shooter interface {
	Shoot(d *Drone, dir r2.Point)
}

// ShooterFunc adapts a plain function to Shooter.
type ShooterFunc func(d *Drone, dir r2.Point)

func (f ShooterFunc) Shoot(d *Drone, dir r2.Point) { f(d, dir) }

// FindClosestEnemyInRange returns the nearest live enemy within rng of the
// drone's center, or nil. On a tie the earlier slot wins.
func FindClosestEnemyInRange(d *Drone, enemies []Enemy, rng float64) *Enemy {
	i := closestEnemyIndex(d.Center(), enemies, rng)
	if i < 0 {
		return nil
	}
	return &enemies[i]
}

func closestEnemyIndex(from r2.Point, enemies []Enemy, rng float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i := range enemies {
		if !enemies[i].Alive {
			continue
		}
		dist := vmath.Distance(enemies[i].Position, from)
		if dist > rng {
			continue
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// TurnTowards blends the facing angle toward dir.
func (d *Drone) TurnTowards(dir r2.Point, blend float64) {
	d.FacingAngle = vmath.LerpAngle(d.FacingAngle, vmath.Angle(r2.Point{X: 1}, dir), blend)
}

// shotResult describes one pass of the shooting gate.
type shotResult struct {
	fired bool
	enemy int
	dir   r2.Point
}

// updateGun advances the cooldown and, when eligible and a target is in
// range, turns toward it, fires, and resets the counter. An eligible drone
// with nothing in range keeps its counter so it re-checks next tick.
func (d *Drone) updateGun(enemies []Enemy, blend float64, shooter Shooter) shotResult {
	d.FramesSinceShotFired++
	if !d.CanShoot() {
		return shotResult{enemy: -1}
	}
	center := d.Center()
	idx := closestEnemyIndex(center, enemies, d.DetectRange)
	if idx < 0 {
		return shotResult{enemy: -1}
	}

	toEnemy := enemies[idx].Position.Sub(center)
	var dir r2.Point
	if vmath.IsDegenerate(toEnemy) {
		dir = vmath.FromAngle(d.FacingAngle)
	} else {
		dir = vmath.Normalize(toEnemy)
		d.TurnTowards(dir, blend)
	}
	d.target = idx
	if shooter != nil {
		shooter.Shoot(d, dir)
	}
	d.FramesSinceShotFired = 0
	return shotResult{fired: true, enemy: idx, dir: dir}
}
