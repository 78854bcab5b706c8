package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mireven/gridworld/internal/nav"
)

// ChunkRepository loads and saves world chunks.
type ChunkRepository struct {
	db *DB
}

// NewChunkRepository creates a repository over the given DB.
func NewChunkRepository(db *DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

const chunkColumns = `x, y, width, height, tiles, heights`

// LoadAll returns every stored chunk.
func (r *ChunkRepository) LoadAll(ctx context.Context) ([]nav.Chunk, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+chunkColumns+` FROM chunks ORDER BY y, x`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// LoadRect returns chunks whose origin lies inside the given world
// tile rectangle — the stream-in query as a player roams.
func (r *ChunkRepository) LoadRect(ctx context.Context, minX, minY, maxX, maxY int32) ([]nav.Chunk, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+chunkColumns+` FROM chunks
		 WHERE x >= $1 AND x <= $2 AND y >= $3 AND y <= $4
		 ORDER BY y, x`,
		minX, maxX, minY, maxY)
	if err != nil {
		return nil, fmt.Errorf("querying chunks in rect: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// Save upserts one chunk keyed by its origin.
func (r *ChunkRepository) Save(ctx context.Context, c nav.Chunk) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO chunks (x, y, width, height, tiles, heights)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (x, y) DO UPDATE
		 SET width = EXCLUDED.width, height = EXCLUDED.height,
		     tiles = EXCLUDED.tiles, heights = EXCLUDED.heights`,
		c.X, c.Y, c.Width, c.Height,
		encodeTiles(c.Tiles), encodeHeights(c.Heights))
	if err != nil {
		return fmt.Errorf("saving chunk (%d, %d): %w", c.X, c.Y, err)
	}
	return nil
}

// Delete removes one chunk. Deleting an absent chunk is not an error.
func (r *ChunkRepository) Delete(ctx context.Context, x, y int32) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM chunks WHERE x = $1 AND y = $2`, x, y)
	if err != nil {
		return fmt.Errorf("deleting chunk (%d, %d): %w", x, y, err)
	}
	return nil
}

func scanChunks(rows pgx.Rows) ([]nav.Chunk, error) {
	var chunks []nav.Chunk
	for rows.Next() {
		var c nav.Chunk
		var tiles, heights []byte
		if err := rows.Scan(&c.X, &c.Y, &c.Width, &c.Height, &tiles, &heights); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		n := int(c.Width) * int(c.Height)
		var err error
		if c.Tiles, err = decodeTiles(tiles, n); err != nil {
			return nil, fmt.Errorf("chunk (%d, %d): %w", c.X, c.Y, err)
		}
		if c.Heights, err = decodeHeights(heights, n); err != nil {
			return nil, fmt.Errorf("chunk (%d, %d): %w", c.X, c.Y, err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}
	return chunks, nil
}
