package nav

import "math"

// Movement costs per step. CostDiagonal must stay >= 1 or the
// Chebyshev heuristic stops being admissible and paths silently lose
// optimality.
const (
	CostCardinal = 1.0
	CostDiagonal = math.Sqrt2
)

// DefaultMaxExpansions caps node expansions per search as a fail-safe
// against pathological grids.
const DefaultMaxExpansions = 7000

// Tile is a world tile coordinate on a returned path.
type Tile struct {
	X, Y int32
}

// Pathfinder runs A* searches over an injected collision grid. It
// holds no state between calls, so one value may serve concurrent
// searches as long as each runs against an immutable grid snapshot.
type Pathfinder struct {
	maxExpansions int
}

// NewPathfinder returns a Pathfinder expanding at most maxExpansions
// nodes per search (<= 0 selects DefaultMaxExpansions).
func NewPathfinder(maxExpansions int) Pathfinder {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	return Pathfinder{maxExpansions: maxExpansions}
}

// FindPath searches for the cheapest route between two world tiles.
// The returned path excludes the start tile and ends at the goal.
// ok=false means no path exists — a routine outcome (goal inside
// water, unstreamed space, budget exhausted), not an error. start ==
// goal yields an empty path with ok=true.
//
// Steps move to one of the 8 neighbors. A step is legal when the
// target tile is walkable and within one height level of the current
// tile; a diagonal step additionally requires both orthogonally
// adjacent corner tiles to pass the same test, so a route never cuts
// through a blocked or too-tall corner.
func (p Pathfinder) FindPath(g *Grid, startX, startY, goalX, goalY int32) ([]Tile, bool) {
	sx, sy := startX-g.offsetX, startY-g.offsetY
	gx, gy := goalX-g.offsetX, goalY-g.offsetY

	if !g.walkableLocal(sx, sy) || !g.walkableLocal(gx, gy) {
		return nil, false
	}
	if sx == gx && sy == gy {
		return []Tile{}, true
	}

	open := newOpenList()
	discovered := make(map[tileKey]*pathNode, 128)
	closed := make(map[tileKey]struct{}, 128)

	start := &pathNode{x: sx, y: sy, index: -1}
	start.f = chebyshev(sx, sy, gx, gy)
	open.push(start)
	discovered[tileKey{sx, sy}] = start

	budget := p.maxExpansions
	if budget <= 0 {
		budget = DefaultMaxExpansions
	}

	for i := 0; i < budget; i++ {
		cur := open.pop()
		if cur == nil {
			return nil, false
		}
		if cur.x == gx && cur.y == gy {
			return reconstruct(g, cur), true
		}
		closed[tileKey{cur.x, cur.y}] = struct{}{}
		curH := g.heightLocal(cur.x, cur.y)

		for _, d := range neighborDirs {
			nx, ny := cur.x+d.dx, cur.y+d.dy
			if !g.walkableLocal(nx, ny) {
				continue
			}
			if heightDelta(g.heightLocal(nx, ny), curH) > 1 {
				continue
			}
			cost := CostCardinal
			if d.diagonal {
				if !p.stepOK(g, cur.x+d.dx, cur.y, curH) ||
					!p.stepOK(g, cur.x, cur.y+d.dy, curH) {
					continue
				}
				cost = CostDiagonal
			}

			k := tileKey{nx, ny}
			if _, done := closed[k]; done {
				continue
			}
			tentative := cur.g + cost
			if n, seen := discovered[k]; seen {
				if tentative < n.g {
					n.g = tentative
					n.f = tentative + chebyshev(nx, ny, gx, gy)
					n.parent = cur
					open.decreaseKey(n)
				}
				continue
			}
			n := &pathNode{x: nx, y: ny, parent: cur, g: tentative, index: -1}
			n.f = tentative + chebyshev(nx, ny, gx, gy)
			discovered[k] = n
			open.push(n)
		}
	}

	return nil, false // budget exhausted
}

// stepOK reports whether a corner tile permits passing: walkable and
// within one level of the height the step originates from.
func (p Pathfinder) stepOK(g *Grid, lx, ly int32, fromHeight uint8) bool {
	if !g.walkableLocal(lx, ly) {
		return false
	}
	return heightDelta(g.heightLocal(lx, ly), fromHeight) <= 1
}

// reconstruct walks parent pointers back to the start, reverses the
// result, and translates grid-local coordinates to world tiles. The
// start node (nil parent) is skipped.
func reconstruct(g *Grid, goal *pathNode) []Tile {
	path := make([]Tile, 0, 32)
	for n := goal; n.parent != nil; n = n.parent {
		path = append(path, Tile{X: n.x + g.offsetX, Y: n.y + g.offsetY})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// chebyshev is the heuristic: max(|dx|, |dy|). Admissible for
// 8-directional movement because every step moves at most one tile on
// each axis at cost >= CostCardinal.
func chebyshev(x, y, gx, gy int32) float64 {
	dx := abs32(x - gx)
	dy := abs32(y - gy)
	return float64(max(dx, dy))
}

func heightDelta(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// neighborDirs lists the 8 expansion directions. Cardinals first so
// corner checks read naturally in FindPath.
var neighborDirs = [8]struct {
	dx, dy   int32
	diagonal bool
}{
	{0, -1, false}, // N
	{1, 0, false},  // E
	{0, 1, false},  // S
	{-1, 0, false}, // W
	{1, -1, true},  // NE
	{1, 1, true},   // SE
	{-1, 1, true},  // SW
	{-1, -1, true}, // NW
}
