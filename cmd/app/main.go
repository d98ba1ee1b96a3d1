package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classforge/engine/internal/bootstrap"
	"github.com/classforge/engine/internal/config"
	"github.com/classforge/engine/internal/database"
	"github.com/classforge/engine/internal/eventlog"
	"github.com/classforge/engine/internal/scheduler"
	"github.com/classforge/engine/internal/server"
	"github.com/classforge/engine/internal/worker"
)

const (
	shutdownTimeout = 15 * time.Second

	jobPoolWorkers   = 2
	jobPoolQueueSize = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	slog.Info("Starting engine",
		"environment", cfg.Environment,
		"version", cfg.Version,
		"port", cfg.Port)

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxIdleTime,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	if err := bootstrap.SyncItemCatalog(ctx, repos.Item, cfg.CatalogSeedPath); err != nil {
		slog.Error("Failed to sync item catalog", "error", err)
		os.Exit(1)
	}

	services := bootstrap.InitializeServices(cfg, repos, resilientPublisher)

	// Subscribe on the inner bus so the audit trail records events as
	// delivered, after any publisher retries.
	if err := services.EventLog.Subscribe(eventBus); err != nil {
		slog.Error("Failed to subscribe event audit log", "error", err)
		os.Exit(1)
	}

	auditWorker := worker.NewConservationAuditWorker(services.Ledger, repos.Ledger, 0, 0)
	auditWorker.Start()

	jobPool := worker.NewPool(jobPoolWorkers, jobPoolQueueSize)
	jobPool.Start()

	jobScheduler := scheduler.New(jobPool)
	jobScheduler.Schedule(cfg.EventCleanupInterval,
		eventlog.NewCleanupJob(services.EventLog, cfg.EventRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, dbPool, services)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		AuditWorker:        auditWorker,
		Scheduler:          jobScheduler,
		JobPool:            jobPool,
		ResilientPublisher: resilientPublisher,
	})
}
