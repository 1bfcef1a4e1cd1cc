// Command migrate manages the DegenBox PostgreSQL schema.
//
// Usage:
//
//	migrate [up|down|status|reset]
//
// reset drops and recreates DB_NAME before applying every migration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"

	"github.com/osse101/DegenBox_Go/internal/config"
	"github.com/osse101/DegenBox_Go/internal/database"
)

const (
	maintenanceDB  = "postgres"
	connectTimeout = 30 * time.Second
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|status|reset]\n", os.Args[0])
	}
	flag.Parse()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if cmd == "reset" {
		if err := resetDatabase(ctx, cfg); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		cmd = "up"
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	switch cmd {
	case "up":
		err = database.Migrate(ctx, pool)
	case "down":
		err = database.Rollback(ctx, pool)
	case "status":
		var statuses []*goose.MigrationStatus
		statuses, err = database.MigrationStatus(ctx, pool)
		for _, st := range statuses {
			fmt.Printf("%05d  %-8s  %s\n", st.Source.Version, st.State, st.Source.Path)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", cmd, err)
	}
}

func resetDatabase(ctx context.Context, cfg *config.Config) error {
	admin := *cfg
	admin.DBName = maintenanceDB

	pool, err := database.NewPool(ctx, admin.GetDBConnString(), 2, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx,
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
		cfg.DBName); err != nil {
		log.Printf("Warning: failed to terminate connections: %v", err)
	}

	name := pgx.Identifier{cfg.DBName}.Sanitize()
	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop %s: %w", cfg.DBName, err)
	}
	if _, err := pool.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("create %s: %w", cfg.DBName, err)
	}
	log.Printf("Database %s recreated", cfg.DBName)
	return nil
}
