package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/config"
	httpserver "github.com/rezkam/todo/internal/infrastructure/http"
	"github.com/rezkam/todo/internal/infrastructure/http/handler"
	"github.com/rezkam/todo/internal/infrastructure/observability"
)

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.LoadServerConfig(opts.envFiles...)
	if err != nil {
		return err
	}

	// Configuration via OTEL_* env vars (endpoint, headers, resource attributes).
	telemetry, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
		LogLevel:    cfg.Observability.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	logger := telemetry.Logger
	slog.SetDefault(logger)

	logger.InfoContext(ctx, "starting todo service",
		"storage", cfg.Database.Type,
		"location", storeLocation(cfg.Database))

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		newCleanup(shutdownCtx, logger, nil, nil, telemetry)()
		return fmt.Errorf("failed to open store: %w", err)
	}

	svc := todo.NewService(st, todo.Config{
		DefaultPageSize: cfg.Todo.DefaultPageSize,
		MaxPageSize:     cfg.Todo.MaxPageSize,
	}, todo.WithLogger(logger))

	server := httpserver.NewAPIServer(handler.NewTodoHandler(svc, logger).Routes(), st, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	errResult := make(chan error, 1)
	go func() {
		errResult <- server.Start()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "shutdown signal received")
	case serveErr = <-errResult:
		if serveErr != nil {
			serveErr = fmt.Errorf("failed to serve HTTP: %w", serveErr)
		}
	}

	// The signal context is already cancelled; give cleanup its own window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	newCleanup(shutdownCtx, logger, server, st, telemetry)()

	return serveErr
}

func runMigrate(ctx context.Context, cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.LoadDatabaseConfig(opts.envFiles...)
	if err != nil {
		return err
	}

	if err := migrateStore(ctx, *cfg); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s database at %s\n", cfg.Type, storeLocation(*cfg))
	return err
}
