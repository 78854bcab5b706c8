package nav

import (
	"log/slog"
	"sync/atomic"
)

// Grid is the merged collision grid for all currently loaded chunks.
// Immutable after BuildGrid: searches may run against it concurrently
// while the Navigator publishes a replacement.
type Grid struct {
	walk    []bool  // row-major [y][x], true = walkable
	heights []uint8 // parallel to walk, levels 0..MaxHeightLevel

	width, height    int32
	offsetX, offsetY int32 // world tile coordinate of index [0][0]

	generation uint64
}

// BuildGrid merges the loaded chunks into a single grid sized to their
// bounding box. Cells not covered by any chunk stay blocked, so a path
// can never route through unstreamed space. Chunks with mismatched
// array sizes are skipped.
func BuildGrid(chunks []Chunk) *Grid {
	minX, minY := int32(0), int32(0)
	maxX, maxY := int32(0), int32(0)
	first := true
	for i := range chunks {
		c := &chunks[i]
		if !c.valid() {
			slog.Warn("skip malformed chunk", "x", c.X, "y", c.Y)
			continue
		}
		if first {
			minX, minY = c.X, c.Y
			maxX, maxY = c.X+c.Width, c.Y+c.Height
			first = false
			continue
		}
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X+c.Width)
		maxY = max(maxY, c.Y+c.Height)
	}
	if first {
		// No usable chunks — zero-size grid, every lookup fails closed.
		return &Grid{}
	}

	g := &Grid{
		width:   maxX - minX,
		height:  maxY - minY,
		offsetX: minX,
		offsetY: minY,
	}
	g.walk = make([]bool, int(g.width)*int(g.height))
	g.heights = make([]uint8, len(g.walk))

	for i := range chunks {
		c := &chunks[i]
		if !c.valid() {
			continue
		}
		baseX := c.X - g.offsetX
		baseY := c.Y - g.offsetY
		for cy := int32(0); cy < c.Height; cy++ {
			src := int(cy) * int(c.Width)
			dst := int(baseY+cy)*int(g.width) + int(baseX)
			for cx := int32(0); cx < c.Width; cx++ {
				g.walk[dst+int(cx)] = c.Tiles[src+int(cx)].Walkable()
				h := c.Heights[src+int(cx)]
				if h > MaxHeightLevel {
					h = MaxHeightLevel
				}
				g.heights[dst+int(cx)] = h
			}
		}
	}
	return g
}

// Bounds returns the world tile rectangle covered by the grid:
// [offsetX, offsetX+width) × [offsetY, offsetY+height).
func (g *Grid) Bounds() (offsetX, offsetY, width, height int32) {
	return g.offsetX, g.offsetY, g.width, g.height
}

// Generation returns the Navigator rebuild count that produced this
// grid (0 for grids built outside a Navigator).
func (g *Grid) Generation() uint64 {
	return g.generation
}

// IsWalkable reports whether the world tile can be occupied.
// Out-of-range coordinates fail closed.
func (g *Grid) IsWalkable(tileX, tileY int32) bool {
	return g.walkableLocal(tileX-g.offsetX, tileY-g.offsetY)
}

// HeightAt returns the terrain level of the world tile. Out-of-range
// coordinates report level 0 and ok=false.
func (g *Grid) HeightAt(tileX, tileY int32) (uint8, bool) {
	lx := tileX - g.offsetX
	ly := tileY - g.offsetY
	if lx < 0 || lx >= g.width || ly < 0 || ly >= g.height {
		return 0, false
	}
	return g.heights[int(ly)*int(g.width)+int(lx)], true
}

func (g *Grid) walkableLocal(lx, ly int32) bool {
	if lx < 0 || lx >= g.width || ly < 0 || ly >= g.height {
		return false
	}
	return g.walk[int(ly)*int(g.width)+int(lx)]
}

func (g *Grid) heightLocal(lx, ly int32) uint8 {
	return g.heights[int(ly)*int(g.width)+int(lx)]
}

// Navigator owns the active collision grid and swaps it as the chunk
// set changes. Readers always see a complete snapshot: an in-flight
// search keeps the grid pointer it started with.
type Navigator struct {
	active atomic.Pointer[Grid]
	gen    atomic.Uint64
}

// NewNavigator returns a Navigator holding an empty grid.
func NewNavigator() *Navigator {
	n := &Navigator{}
	n.active.Store(&Grid{})
	return n
}

// Rebuild merges the chunks into a fresh grid and publishes it as the
// active snapshot. Called whenever chunks stream in or out; the full
// rebuild keeps the merge simple and grids are modest in size.
func (n *Navigator) Rebuild(chunks []Chunk) *Grid {
	g := BuildGrid(chunks)
	g.generation = n.gen.Add(1)
	n.active.Store(g)
	slog.Debug("collision grid rebuilt",
		"generation", g.generation,
		"chunks", len(chunks),
		"width", g.width,
		"height", g.height)
	return g
}

// Grid returns the current grid snapshot.
func (n *Navigator) Grid() *Grid {
	return n.active.Load()
}
