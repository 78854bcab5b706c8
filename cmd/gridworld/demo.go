package main

import (
	"log/slog"

	"github.com/mireven/gridworld/internal/nav"
	"github.com/mireven/gridworld/internal/sim"
)

// demoIsland builds a 2×2 arrangement of 32×32 chunks: grass ringed by
// water, with a stepped hill in the northeast so height rules have
// something to bite on.
func demoIsland() []nav.Chunk {
	const size = int32(32)
	var chunks []nav.Chunk
	for cy := int32(0); cy < 2; cy++ {
		for cx := int32(0); cx < 2; cx++ {
			c := nav.Chunk{
				X:       cx * size,
				Y:       cy * size,
				Width:   size,
				Height:  size,
				Tiles:   make([]nav.TileKind, size*size),
				Heights: make([]uint8, size*size),
			}
			for y := int32(0); y < size; y++ {
				for x := int32(0); x < size; x++ {
					wx := c.X + x
					wy := c.Y + y
					i := y*size + x
					c.Tiles[i] = demoTile(wx, wy)
					c.Heights[i] = demoHeight(wx, wy)
				}
			}
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func demoTile(wx, wy int32) nav.TileKind {
	// Water moat around the 64×64 island.
	if wx < 3 || wy < 3 || wx > 60 || wy > 60 {
		return nav.TileWater
	}
	if wx < 5 || wy < 5 || wx > 58 || wy > 58 {
		return nav.TileSand
	}
	return nav.TileGround
}

func demoHeight(wx, wy int32) uint8 {
	// Stepped hill in the northeast quadrant, one level per ring so
	// it stays climbable.
	if wx > 40 && wy < 24 {
		h := (wx - 40) / 4
		if h > nav.MaxHeightLevel {
			h = nav.MaxHeightLevel
		}
		return uint8(h)
	}
	return 0
}

// spawnDemoActors places a few wanderers and hostiles on walkable
// tiles so the tick loop has something to schedule.
func spawnDemoActors(s *sim.Scheduler, grid *nav.Grid) {
	spawns := []sim.Actor{
		{ID: 1, X: 10.5, Y: 10.5, Speed: 0.4},
		{ID: 2, X: 50.5, Y: 50.5, Speed: 0.4},
		{ID: 3, X: 30.5, Y: 30.5, Speed: 0.6, AggroRange: 12, Hostile: true},
		{ID: 4, X: 45.5, Y: 15.5, Speed: 0.5, AggroRange: 10, Hostile: true},
	}
	for i := range spawns {
		a := spawns[i]
		if !grid.IsWalkable(a.TileX(), a.TileY()) {
			slog.Warn("demo spawn on blocked tile, skipping", "actor", a.ID)
			continue
		}
		s.AddActor(&a)
	}
}
