// Package sim runs the per-tick simulation loop: movement, spatial
// re-indexing, aggro scanning, and path requests. It is the consumer
// side of the navigation and spatial-query engine.
package sim

import (
	"context"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mireven/gridworld/internal/nav"
	"github.com/mireven/gridworld/internal/spatial"
)

// Scheduler owns the actor set and drives one simulation tick at a
// time. Not safe for concurrent use; the game loop calls it from a
// single goroutine.
type Scheduler struct {
	navigator *nav.Navigator
	finder    nav.Pathfinder
	entities  *spatial.Grid[*Actor]
	actors    map[uint32]*Actor
	tick      uint64
}

// NewScheduler creates a scheduler indexing actors in spatial cells of
// the given size.
func NewScheduler(navigator *nav.Navigator, finder nav.Pathfinder, cellSize float64) *Scheduler {
	return &Scheduler{
		navigator: navigator,
		finder:    finder,
		entities:  spatial.New(cellSize, (*Actor).Position),
		actors:    make(map[uint32]*Actor),
	}
}

// AddActor spawns an actor into the simulation and the spatial index.
func (s *Scheduler) AddActor(a *Actor) {
	s.actors[a.ID] = a
	s.entities.Insert(a)
}

// RemoveActor despawns an actor, dropping any chases aimed at it.
func (s *Scheduler) RemoveActor(id uint32) {
	a, ok := s.actors[id]
	if !ok {
		return
	}
	delete(s.actors, id)
	s.entities.Remove(a)
	for _, other := range s.actors {
		if other.target == a {
			other.target = nil
			other.path = nil
		}
	}
}

// Actor returns the actor with the given id, nil if absent.
func (s *Scheduler) Actor(id uint32) *Actor {
	return s.actors[id]
}

// Tick runs one simulation step. Phases are ordered so every spatial
// index update lands before the first proximity query of the tick; a
// query would otherwise observe last tick's cells.
func (s *Scheduler) Tick(ctx context.Context) error {
	s.tick++

	// One grid snapshot for the whole tick. Chunk streaming publishes
	// replacements through the Navigator; searches below never see a
	// grid mutated mid-flight.
	grid := s.navigator.Grid()

	for _, a := range s.actors {
		if a.advance() {
			s.entities.Update(a)
		}
	}

	var chasing []*Actor
	for _, a := range s.actors {
		if !a.Hostile {
			continue
		}
		if a.target == nil {
			if prey := s.nearestPrey(a); prey != nil {
				a.target = prey
				slog.Debug("actor acquired target",
					"actor", a.ID, "target", prey.ID, "tick", s.tick)
			}
		}
		if a.target != nil && s.routeStale(a) {
			chasing = append(chasing, a)
		}
	}

	// Path requests run in parallel against the snapshot; each
	// goroutine touches only its own actor.
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, a := range chasing {
		a := a
		eg.Go(func() error {
			path, ok := s.finder.FindPath(grid,
				a.TileX(), a.TileY(), a.target.TileX(), a.target.TileY())
			if !ok {
				// Unreachable prey is routine: give up quietly.
				a.target = nil
				a.path = nil
				return nil
			}
			a.path = path
			return nil
		})
	}
	return eg.Wait()
}

// nearestPrey returns the closest non-hostile actor within aggro
// range, nil when none is near.
func (s *Scheduler) nearestPrey(a *Actor) *Actor {
	var best *Actor
	bestDist := math.MaxFloat64
	for _, c := range s.entities.QueryRadius(a.X, a.Y, a.AggroRange) {
		if c == a || c.Hostile {
			continue
		}
		dx := c.X - a.X
		dy := c.Y - a.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// routeStale reports whether the current path no longer ends at the
// target's tile, meaning the chase needs a fresh search.
func (s *Scheduler) routeStale(a *Actor) bool {
	if len(a.path) == 0 {
		return a.TileX() != a.target.TileX() || a.TileY() != a.target.TileY()
	}
	last := a.path[len(a.path)-1]
	return last.X != a.target.TileX() || last.Y != a.target.TileY()
}

// Tick count since the scheduler started.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}
