package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the gridworld server.
type Server struct {
	LogLevel string `yaml:"log_level"`
	TickMS   int    `yaml:"tick_ms"`

	Database DatabaseConfig `yaml:"database"`
	Nav      NavConfig      `yaml:"nav"`
	Spatial  SpatialConfig  `yaml:"spatial"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the chunk
// store. Disabled runs the server on the built-in demo island without
// a database.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Disabled bool   `yaml:"disabled"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NavConfig tunes the pathfinder.
type NavConfig struct {
	// MaxExpansions caps A* node expansions per search.
	MaxExpansions int `yaml:"max_expansions"`
}

// SpatialConfig tunes the spatial hash grid.
type SpatialConfig struct {
	// CellSize is the hash cell edge length in tiles.
	CellSize float64 `yaml:"cell_size"`
}

// Default returns Server config with sensible defaults.
func Default() Server {
	return Server{
		LogLevel: "info",
		TickMS:   100,
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "gridworld",
			DBName:  "gridworld",
			SSLMode: "disable",
		},
		Nav:     NavConfig{MaxExpansions: 7000},
		Spatial: SpatialConfig{CellSize: 4},
	}
}

// Load reads the config file at path, overlaying it on defaults.
// A missing file yields the defaults.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
