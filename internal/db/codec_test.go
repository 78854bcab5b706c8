package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mireven/gridworld/internal/nav"
)

func TestTileBlobRoundTrip(t *testing.T) {
	tiles := []nav.TileKind{
		nav.TileGround, nav.TileWater, nav.TileSand,
		nav.TileRock, nav.TileLava, nav.TileVoid,
	}

	blob := encodeTiles(tiles)
	got, err := decodeTiles(blob, len(tiles))
	require.NoError(t, err)
	assert.Equal(t, tiles, got)
}

func TestHeightBlobRoundTrip(t *testing.T) {
	heights := []uint8{0, 1, 2, 3, 4, 5}

	blob := encodeHeights(heights)
	got, err := decodeHeights(blob, len(heights))
	require.NoError(t, err)
	assert.Equal(t, heights, got)
}

func TestDecodeRejectsBadBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want int
	}{
		{name: "empty", blob: nil, want: 4},
		{name: "unknown version", blob: []byte{99, 0, 0}, want: 2},
		{name: "length mismatch", blob: []byte{blobVersion, 0, 0}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTiles(tt.blob, tt.want)
			assert.Error(t, err)
			_, err = decodeHeights(tt.blob, tt.want)
			assert.Error(t, err)
		})
	}
}
