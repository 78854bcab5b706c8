package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mireven/gridworld/internal/config"
	"github.com/mireven/gridworld/internal/db"
	"github.com/mireven/gridworld/internal/nav"
	"github.com/mireven/gridworld/internal/sim"
)

const ConfigPath = "config/gridworld.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GRIDWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("gridworld server starting", "log_level", cfg.LogLevel, "tick_ms", cfg.TickMS)

	chunks, err := loadChunks(ctx, cfg)
	if err != nil {
		return err
	}

	navigator := nav.NewNavigator()
	grid := navigator.Rebuild(chunks)
	offsetX, offsetY, width, height := grid.Bounds()
	slog.Info("collision grid ready",
		"offset_x", offsetX, "offset_y", offsetY,
		"width", width, "height", height)

	finder := nav.NewPathfinder(cfg.Nav.MaxExpansions)
	scheduler := sim.NewScheduler(navigator, finder, cfg.Spatial.CellSize)
	spawnDemoActors(scheduler, grid)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(cfg.TickMS) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := scheduler.Tick(ctx); err != nil {
					return fmt.Errorf("simulation tick: %w", err)
				}
			}
		}
	})

	slog.Info("simulation loop running")
	return g.Wait()
}

// loadChunks reads the world from PostgreSQL, falling back to the
// built-in demo island when the database is disabled or empty.
func loadChunks(ctx context.Context, cfg config.Server) ([]nav.Chunk, error) {
	if cfg.Database.Disabled {
		slog.Info("database disabled, using demo island")
		return demoIsland(), nil
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	repo := db.NewChunkRepository(database)
	chunks, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	if len(chunks) == 0 {
		slog.Info("no chunks stored, seeding demo island")
		chunks = demoIsland()
		for _, c := range chunks {
			if err := repo.Save(ctx, c); err != nil {
				return nil, fmt.Errorf("seeding chunks: %w", err)
			}
		}
	}
	slog.Info("chunks loaded", "count", len(chunks))
	return chunks, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
