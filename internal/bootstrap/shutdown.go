package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/questledger/internal/event"
	"github.com/osse101/questledger/internal/server"
	"github.com/osse101/questledger/internal/sse"
	"github.com/osse101/questledger/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	RolloverWorker     *worker.RolloverWorker
	SSEHub             *sse.Hub
	JobPool            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Rollover worker (no new settlements)
//  3. SSE hub (disconnect streaming clients)
//  4. Event publisher (flush pending events, which may still queue webhook posts)
//  5. Job pool (finish queued webhook posts)
//  6. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.RolloverWorker != nil {
		if err := components.RolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgRolloverWorkerFailed, "error", err)
		}
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.JobPool != nil {
		components.JobPool.Stop()
	}

	if components.Repositories != nil {
		components.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
