// Package app holds process bootstrap shared by the CLI commands:
// configuration loading, logger setup, and connections to PostgreSQL
// and the optional Redis word cache.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/vocabguru/backend/internal/adapter/postgres"
	"github.com/vocabguru/backend/internal/adapter/redis"
	"github.com/vocabguru/backend/internal/config"
)

// Deps bundles the process-level dependencies every command starts from.
type Deps struct {
	Cfg   *config.Config
	Log   *slog.Logger
	Pool  *pgxpool.Pool
	Cache *redis.Cache // nil when no cache addr is configured
}

// Setup loads .env and configuration, builds the logger, and connects to
// the database and (if configured) the cache.
func Setup(ctx context.Context) (*Deps, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	var cache *redis.Cache
	if cfg.Redis.Enabled() {
		cache, err = redis.NewCache(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to cache: %w", err)
		}
		logger.Info("word cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	return &Deps{Cfg: cfg, Log: logger, Pool: pool, Cache: cache}, nil
}

// Close releases the connections opened by Setup.
func (d *Deps) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Log.Warn("close cache", slog.String("error", err.Error()))
		}
	}
	d.Pool.Close()
}
