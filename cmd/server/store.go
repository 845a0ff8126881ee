package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/config"
	"github.com/rezkam/todo/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todo/internal/infrastructure/persistence/sqlite"
)

// store is what the server needs from a record store backend.
type store interface {
	todo.Repository
	Ping(ctx context.Context) error
	Close() error
}

// openStore connects to the backend selected by TODO_STORAGE_TYPE.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		return postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Second,
			AutoMigrate:     cfg.AutoMigrate,
		})
	case config.StorageSQLite:
		return sqlite.NewStoreWithConfig(ctx, sqlite.DBConfig{
			Path:            cfg.SQLitePath,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
			AutoMigrate:     cfg.AutoMigrate,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// migrateStore applies the embedded migrations of the selected backend.
func migrateStore(ctx context.Context, cfg config.DatabaseConfig) error {
	switch cfg.Type {
	case config.StoragePostgres:
		return postgres.Migrate(ctx, cfg.DSN)
	case config.StorageSQLite:
		return sqlite.Migrate(ctx, cfg.SQLitePath)
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// storeLocation describes the database for logs without leaking credentials.
func storeLocation(cfg config.DatabaseConfig) string {
	if cfg.Type == config.StorageSQLite {
		return cfg.SQLitePath
	}
	return maskPassword(cfg.DSN)
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
