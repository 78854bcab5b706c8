package db

import (
	"fmt"

	"github.com/mireven/gridworld/internal/nav"
)

// Blob layout: 1-byte version prefix followed by one byte per tile.
// Bump blobVersion when the per-tile encoding changes.
const blobVersion byte = 1

func encodeTiles(tiles []nav.TileKind) []byte {
	out := make([]byte, 1+len(tiles))
	out[0] = blobVersion
	for i, t := range tiles {
		out[1+i] = byte(t)
	}
	return out
}

func decodeTiles(blob []byte, want int) ([]nav.TileKind, error) {
	if err := checkBlob(blob, want); err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}
	tiles := make([]nav.TileKind, want)
	for i := range tiles {
		tiles[i] = nav.TileKind(blob[1+i])
	}
	return tiles, nil
}

func encodeHeights(heights []uint8) []byte {
	out := make([]byte, 1+len(heights))
	out[0] = blobVersion
	copy(out[1:], heights)
	return out
}

func decodeHeights(blob []byte, want int) ([]uint8, error) {
	if err := checkBlob(blob, want); err != nil {
		return nil, fmt.Errorf("heights: %w", err)
	}
	heights := make([]uint8, want)
	copy(heights, blob[1:])
	return heights, nil
}

func checkBlob(blob []byte, want int) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty blob")
	}
	if blob[0] != blobVersion {
		return fmt.Errorf("unsupported blob version %d", blob[0])
	}
	if len(blob)-1 != want {
		return fmt.Errorf("blob holds %d tiles, chunk declares %d", len(blob)-1, want)
	}
	return nil
}
