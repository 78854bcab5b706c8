package nav

// TileKind identifies the terrain type of a single world tile.
type TileKind uint8

const (
	TileVoid TileKind = iota
	TileGround
	TileSand
	TileRock
	TileWater
	TileLava
)

// Walkable reports whether an entity may occupy a tile of this kind.
func (k TileKind) Walkable() bool {
	switch k {
	case TileGround, TileSand, TileRock:
		return true
	default:
		return false
	}
}

// MaxHeightLevel is the highest terrain level a tile can carry.
// Entities climb at most one level per step.
const MaxHeightLevel = 5

// Chunk is a rectangular region of tiles streamed in and out as players
// roam. Tiles and Heights are row-major [y][x] and must have the same
// length (Width*Height).
type Chunk struct {
	X, Y          int32 // world tile coordinate of Tiles[0]
	Width, Height int32
	Tiles         []TileKind
	Heights       []uint8
}

// valid reports whether the chunk's arrays match its declared dimensions.
func (c *Chunk) valid() bool {
	if c.Width <= 0 || c.Height <= 0 {
		return false
	}
	n := int(c.Width) * int(c.Height)
	return len(c.Tiles) == n && len(c.Heights) == n
}
