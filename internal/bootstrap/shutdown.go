package bootstrap

import (
	"context"
	"log/slog"

	"github.com/platify/platify-core/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Workers *Workers
	Storage *Storage
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Background workers (cancel pending timers and in-flight sweeps)
// 3. Storage (close connections once nothing can write)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if w := components.Workers; w != nil {
		if w.Weekly != nil {
			if err := w.Weekly.Shutdown(ctx); err != nil {
				slog.Error(LogMsgWorkerShutdownFailed, "error", err)
			}
		}
		// Scheduler before pool so no tick enqueues into a stopped pool
		if w.Scheduler != nil {
			w.Scheduler.Stop()
		}
		if w.Pool != nil {
			w.Pool.Stop()
		}
	}

	if components.Storage != nil {
		components.Storage.Close(ctx)
	}

	slog.Info(LogMsgServerStopped)
}
