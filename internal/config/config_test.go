package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridworld.yaml")
	data := []byte("log_level: debug\nnav:\n  max_expansions: 500\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500, cfg.Nav.MaxExpansions)
	assert.Equal(t, 100, cfg.TickMS, "untouched fields keep defaults")
	assert.Equal(t, 4.0, cfg.Spatial.CellSize)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p",
		DBName: "world", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5433/world?sslmode=disable", d.DSN())
}
