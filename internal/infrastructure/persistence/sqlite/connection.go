package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MemoryPath keeps the whole database in process memory.
const MemoryPath = ":memory:"

// DBConfig holds SQLite connection configuration.
type DBConfig struct {
	Path            string        // Database file, or MemoryPath
	MaxOpenConns    int           // Maximum open connections (default: 4, always 1 in memory)
	ConnMaxLifetime time.Duration // Connection max lifetime (default: unlimited)
	AutoMigrate     bool          // Apply pending migrations after opening
}

// dsn builds a modernc.org/sqlite connection string. Writers take the
// database lock when their transaction begins and wait up to five seconds for it.
func dsn(path string) string {
	params := url.Values{}
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "foreign_keys(1)")
	params.Set("_txlock", "immediate")
	if path != MemoryPath {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + params.Encode()
}

// NewStoreWithConfig opens the database and optionally migrates it.
func NewStoreWithConfig(ctx context.Context, cfg DBConfig) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 4
	}
	if cfg.Path == MemoryPath {
		maxOpenConns = 1
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	if cfg.ConnMaxLifetime > 0 && cfg.Path != MemoryPath {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewStore(db), nil
}

// NewMemoryStore returns a migrated in-memory store.
func NewMemoryStore(ctx context.Context) (*Store, error) {
	return NewStoreWithConfig(ctx, DBConfig{Path: MemoryPath, AutoMigrate: true})
}

// Migrate applies the embedded migrations to the database file at path.
func Migrate(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close migration database connection", "error", err)
		}
	}()

	return migrate(ctx, db)
}

func migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"dialect", "sqlite",
			"version", r.Source.Version,
			"duration_ms", r.Duration.Milliseconds())
	}

	return nil
}
