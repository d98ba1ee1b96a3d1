package bootstrap

import (
	"context"
	"log/slog"

	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/scheduler"
	"github.com/classforge/engine/internal/server"
	"github.com/classforge/engine/internal/worker"
)

// ShutdownComponents holds the components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	AuditWorker        *worker.ConservationAuditWorker
	Scheduler          *scheduler.Scheduler
	JobPool            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application in dependency order: the HTTP
// server first so no new work arrives, then the background workers, then
// the publisher so pending events flush to the dead-letter file. Errors
// are logged but never stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.AuditWorker != nil {
		if err := components.AuditWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgAuditWorkerFailed, "error", err)
		}
	}

	// Scheduler stops before the pool so nothing enqueues into a
	// stopped pool.
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.JobPool != nil {
		components.JobPool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Close(); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
