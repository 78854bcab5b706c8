// Package spatial provides a uniform-cell hash index over moving point
// entities, turning per-tick proximity testing from all-pairs into a
// few cell lookups.
package spatial

import "math"

// DefaultCellSize is the cell edge length used when no size is
// configured, in the same units as entity positions (tiles).
const DefaultCellSize = 4.0

type cellKey struct {
	cx, cy int32
}

// Grid indexes entities of type T by their continuous position. T must
// be comparable and stable: the same value used for Insert must be
// used for Update and Remove (pointers qualify). The grid stores T as
// given, without copying what it refers to.
//
// The grid is not safe for concurrent mutation; callers run all
// updates before queries within a tick. A query issued before an
// entity's Update for the tick observes its last indexed position.
type Grid[T comparable] struct {
	cellSize float64
	pos      func(T) (x, y float64)
	cells    map[cellKey]map[T]struct{}
	located  map[T]cellKey
}

// New creates a grid with the given cell size (<= 0 selects
// DefaultCellSize) and position accessor.
func New[T comparable](cellSize float64, pos func(T) (x, y float64)) *Grid[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid[T]{
		cellSize: cellSize,
		pos:      pos,
		cells:    make(map[cellKey]map[T]struct{}),
		located:  make(map[T]cellKey),
	}
}

func (g *Grid[T]) keyAt(x, y float64) cellKey {
	return cellKey{
		cx: int32(math.Floor(x / g.cellSize)),
		cy: int32(math.Floor(y / g.cellSize)),
	}
}

// Insert indexes the entity under its current position. If it was
// already indexed elsewhere it is moved, so Insert doubles as the
// per-tick relocation step.
func (g *Grid[T]) Insert(e T) {
	key := g.keyAt(g.pos(e))
	if old, ok := g.located[e]; ok {
		if old == key {
			return
		}
		g.dropFromCell(e, old)
	}
	cell := g.cells[key]
	if cell == nil {
		cell = make(map[T]struct{})
		g.cells[key] = cell
	}
	cell[e] = struct{}{}
	g.located[e] = key
}

// Update re-indexes the entity from its current position. Callers
// invoke it once per tick per moved entity.
func (g *Grid[T]) Update(e T) {
	g.Insert(e)
}

// Remove unindexes the entity. Unknown entities are ignored.
func (g *Grid[T]) Remove(e T) {
	key, ok := g.located[e]
	if !ok {
		return
	}
	g.dropFromCell(e, key)
	delete(g.located, e)
}

// dropFromCell removes the entity from one cell, deleting the cell
// record once empty so memory stays bounded as entities roam.
func (g *Grid[T]) dropFromCell(e T, key cellKey) {
	cell := g.cells[key]
	delete(cell, e)
	if len(cell) == 0 {
		delete(g.cells, key)
	}
}

// QueryRadius returns every indexed entity within Euclidean distance r
// of (x, y). Cells overlapping the bounding square are enumerated,
// then candidates are filtered exactly.
func (g *Grid[T]) QueryRadius(x, y, r float64) []T {
	if r < 0 {
		return nil
	}
	var out []T
	rr := r * r
	g.eachCandidate(x-r, y-r, x+r, y+r, func(e T) {
		ex, ey := g.pos(e)
		dx, dy := ex-x, ey-y
		if dx*dx+dy*dy <= rr {
			out = append(out, e)
		}
	})
	return out
}

// QueryRect returns every indexed entity inside the axis-aligned
// rectangle, bounds inclusive.
func (g *Grid[T]) QueryRect(minX, minY, maxX, maxY float64) []T {
	if minX > maxX || minY > maxY {
		return nil
	}
	var out []T
	g.eachCandidate(minX, minY, maxX, maxY, func(e T) {
		ex, ey := g.pos(e)
		if ex >= minX && ex <= maxX && ey >= minY && ey <= maxY {
			out = append(out, e)
		}
	})
	return out
}

// eachCandidate visits every entity indexed in cells intersecting the
// bounding rectangle — a conservative superset of any shape inside it.
func (g *Grid[T]) eachCandidate(minX, minY, maxX, maxY float64, fn func(T)) {
	lo := g.keyAt(minX, minY)
	hi := g.keyAt(maxX, maxY)
	for cy := lo.cy; cy <= hi.cy; cy++ {
		for cx := lo.cx; cx <= hi.cx; cx++ {
			for e := range g.cells[cellKey{cx, cy}] {
				fn(e)
			}
		}
	}
}

// All returns every indexed entity in unspecified order.
func (g *Grid[T]) All() []T {
	out := make([]T, 0, len(g.located))
	for e := range g.located {
		out = append(out, e)
	}
	return out
}

// Len returns the number of indexed entities.
func (g *Grid[T]) Len() int {
	return len(g.located)
}

// Clear drops every entity and cell.
func (g *Grid[T]) Clear() {
	clear(g.cells)
	clear(g.located)
}
