package main

import (
	"context"
	"io"
	"log/slog"
)

// shutdowner is satisfied by the HTTP server and the telemetry providers.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup returns the shutdown sequence: stop serving, close the store,
// then flush telemetry so the earlier steps are still exported.
func newCleanup(ctx context.Context, logger *slog.Logger, server shutdowner, store io.Closer, telemetry shutdowner) func() {
	return func() {
		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "failed to shut down HTTP server", "error", err)
			}
		}

		if store != nil {
			if err := store.Close(); err != nil {
				logger.ErrorContext(ctx, "failed to close store", "error", err)
			}
		}

		if telemetry != nil {
			if err := telemetry.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "failed to shut down telemetry", "error", err)
			}
		}
	}
}
