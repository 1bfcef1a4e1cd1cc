// Command server runs the DegenBox HTTP API.
//
// @title DegenBox API
// @version 1.0
// @description Lootbox reward engine: projects, box lifecycle, vault accounting.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

//go:generate swag init -d ../.. -g cmd/server/main.go -o ../../docs

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/osse101/DegenBox_Go/docs"
	"github.com/osse101/DegenBox_Go/internal/bootstrap"
	"github.com/osse101/DegenBox_Go/internal/box"
	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/config"
	"github.com/osse101/DegenBox_Go/internal/gameconfig"
	"github.com/osse101/DegenBox_Go/internal/handler"
	"github.com/osse101/DegenBox_Go/internal/oracle"
	"github.com/osse101/DegenBox_Go/internal/project"
	"github.com/osse101/DegenBox_Go/internal/scheduler"
	"github.com/osse101/DegenBox_Go/internal/server"
	"github.com/osse101/DegenBox_Go/internal/vault"
	"github.com/osse101/DegenBox_Go/internal/worker"
)

const workerQueueSize = 16

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	platformCfg, err := gameconfig.Load(ctx, cfg.GameConfigPath)
	if err != nil {
		return err
	}
	configSvc, err := gameconfig.NewService(platformCfg, cfg.AdminID)
	if err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return err
	}
	bootstrap.RegisterEventHandlers(events.Publisher)

	clk := clock.NewRealClock()
	orc, err := oracle.NewLocal([]byte(cfg.OracleSecret), cfg.OracleRevealDelay, clk)
	if err != nil {
		storage.Close()
		return err
	}

	reserves := vault.NewReserveCache(vault.ReserveCacheSize, vault.ReserveCacheTTL)
	vaultSvc, err := vault.NewService(storage.Store, configSvc, reserves, vault.ReserveMode(cfg.ReserveMode), cfg.AdminID, clk, events.Publisher)
	if err != nil {
		storage.Close()
		return err
	}
	projectSvc := project.NewService(storage.Store, clk, events.Publisher)
	boxSvc := box.NewService(storage.Store, configSvc, orc, clk, events.Publisher)

	pool := worker.NewPool(ctx, cfg.WorkerCount, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.ReserveSnapshotInterval, worker.NewReserveSnapshotJob(storage.Store, configSvc, reserves, clk))

	opts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		DBPool:         storage.Pool,
	}
	srv := server.NewServer(opts, handler.Handlers{
		Project: handler.NewProjectHandler(projectSvc),
		Box:     handler.NewBoxHandler(boxSvc),
		Vault:   handler.NewVaultHandler(vaultSvc),
		Admin:   handler.NewAdminHandler(configSvc, vaultSvc),
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		Pool:      pool,
		Events:    events,
		Storage:   storage,
	})
	return runErr
}
