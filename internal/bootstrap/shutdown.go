package bootstrap

import (
	"context"
	"log/slog"

	"github.com/candystand/CandyBot_Go/internal/database"
	"github.com/candystand/CandyBot_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	DBPool database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components:
// 1. HTTP server (stop accepting new requests, drain in-flight ones)
// 2. Database pool (release connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
