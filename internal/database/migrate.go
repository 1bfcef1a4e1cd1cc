package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func withProvider(pool *pgxpool.Pool, fn func(*goose.Provider) error) error {
	migrations, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return err
	}
	return fn(provider)
}

// Migrate applies every pending embedded migration
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	err := withProvider(pool, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			slog.Default().Info(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return nil
}

// MigrationStatus reports the applied state of every embedded migration.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) ([]*goose.MigrationStatus, error) {
	var statuses []*goose.MigrationStatus
	err := withProvider(pool, func(p *goose.Provider) error {
		var err error
		statuses, err = p.Status(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrationStatus, err)
	}
	return statuses, nil
}

// Rollback undoes the most recently applied migration.
func Rollback(ctx context.Context, pool *pgxpool.Pool) error {
	err := withProvider(pool, func(p *goose.Provider) error {
		r, err := p.Down(ctx)
		if err != nil {
			return err
		}
		if r != nil && r.Source != nil {
			slog.Default().Info(LogMsgMigrationRolledBack, "version", r.Source.Version)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRollback, err)
	}
	return nil
}
