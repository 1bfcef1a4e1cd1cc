package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/DegenBox_Go/internal/config"
	"github.com/osse101/DegenBox_Go/internal/database"
	"github.com/osse101/DegenBox_Go/internal/database/memory"
	"github.com/osse101/DegenBox_Go/internal/database/postgres"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

// Storage is the selected store and, for PostgreSQL, the pool behind it.
// Pool is nil for the in-memory backend.
type Storage struct {
	Store repository.Store
	Pool  database.Pool
}

// Close releases the connection pool, if any.
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	slog.Info(LogMsgStorageClosed)
}

// InitializeStorage opens the backend named by cfg.Storage and, for
// PostgreSQL with MIGRATE_ON_RUN, applies pending migrations.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn(LogMsgUsingMemoryStore)
		return &Storage{Store: memory.NewStore()}, nil
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if cfg.MigrateOnRun {
			slog.Info(LogMsgRunningMigrations)
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
			}
		}
		slog.Info(LogMsgUsingPostgresStore, "host", cfg.DBHost, "database", cfg.DBName)
		return &Storage{Store: postgres.NewStore(pool), Pool: pool}, nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorage, cfg.Storage)
	}
}
