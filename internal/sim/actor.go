package sim

import (
	"math"

	"github.com/mireven/gridworld/internal/nav"
)

// Actor is a simulated entity with a continuous world position in
// tile units. Hostile actors scan for prey each tick and chase it
// along pathfinder routes.
type Actor struct {
	ID         uint32
	X, Y       float64
	Speed      float64 // tiles per tick
	AggroRange float64
	Hostile    bool

	path   []nav.Tile
	target *Actor
}

// Position returns the actor's continuous coordinates.
func (a *Actor) Position() (x, y float64) {
	return a.X, a.Y
}

// TileX returns the tile column the actor currently occupies.
func (a *Actor) TileX() int32 {
	return int32(math.Floor(a.X))
}

// TileY returns the tile row the actor currently occupies.
func (a *Actor) TileY() int32 {
	return int32(math.Floor(a.Y))
}

// Target returns the actor currently being chased, nil if idle.
func (a *Actor) Target() *Actor {
	return a.target
}

// Path returns the remaining waypoints of the current route.
func (a *Actor) Path() []nav.Tile {
	return a.path
}

// advance moves the actor toward the center of its next waypoint,
// consuming waypoints as they are reached. Reports whether the
// position changed.
func (a *Actor) advance() bool {
	if a.Speed <= 0 {
		return false
	}
	moved := false
	budget := a.Speed
	for len(a.path) > 0 && budget > 0 {
		wp := a.path[0]
		wx := float64(wp.X) + 0.5
		wy := float64(wp.Y) + 0.5
		dx := wx - a.X
		dy := wy - a.Y
		dist := math.Hypot(dx, dy)
		if dist <= budget {
			a.X, a.Y = wx, wy
			a.path = a.path[1:]
			budget -= dist
			moved = true
			continue
		}
		a.X += dx / dist * budget
		a.Y += dy / dist * budget
		return true
	}
	return moved
}
