package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rezkam/todo/internal/application/todo"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides the PostgreSQL implementation of todo.Repository.
//
// A Store returned by NewStore runs each call on its own pooled connection.
// The Store handed to an Atomic callback is bound to that transaction.
type Store struct {
	pool *pgxpool.Pool
	db   querier
	tx   pgx.Tx
}

// Compile-time verification that Store implements the repository interface.
var _ todo.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		db:   pool,
	}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// finalizeTx handles transaction cleanup for normal error/success cases.
// Rolls back on error, commits on success.
// Panics are handled in the defer block before finalizeTx is called.
func finalizeTx(ctx context.Context, tx pgx.Tx, err *error) {
	if *err != nil {
		slog.DebugContext(ctx, "transaction failed, rolling back",
			"error", *err)
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed",
				"original_error", *err,
				"rollback_error", rbErr)
			*err = fmt.Errorf("transaction failed: %w (rollback error: %v)", *err, rbErr)
		}
	} else {
		*err = tx.Commit(ctx)
		if *err != nil {
			slog.ErrorContext(ctx, "transaction commit failed",
				"error", *err)
		}
	}
}

// executeInTransaction executes fn within a transaction with logging and panic recovery.
func (s *Store) executeInTransaction(ctx context.Context, operationName string, opts pgx.TxOptions, fn func(txStore *Store) error) (err error) {
	start := time.Now().UTC()

	tx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction",
			"operation", operationName,
			"error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			slog.ErrorContext(ctx, "transaction panic, rolling back",
				"operation", operationName,
				"panic", p)
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.ErrorContext(ctx, "rollback after panic failed",
					"operation", operationName,
					"panic", p,
					"rollback_error", rbErr)
			}
			panic(p)
		}

		finalizeTx(ctx, tx, &err)
		if err == nil {
			slog.DebugContext(ctx, "transaction completed",
				"operation", operationName,
				"duration_ms", time.Since(start).Milliseconds())
		}
	}()

	txStore := &Store{
		pool: s.pool,
		db:   tx,
		tx:   tx,
	}

	err = fn(txStore)
	return
}

// Atomic executes a callback function within a database transaction.
// All operations inside the callback succeed together or fail together.
// Commits the transaction if callback returns nil, rolls back if callback returns an error.
// Calling Atomic on a Store that is already bound to a transaction reuses it.
func (s *Store) Atomic(ctx context.Context, fn func(repo todo.Repository) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.executeInTransaction(ctx, "atomic", pgx.TxOptions{}, func(txStore *Store) error {
		return fn(txStore)
	})
}

// snapshot runs fn against a read-only REPEATABLE READ transaction so that
// every query inside fn observes the same database state.
func (s *Store) snapshot(ctx context.Context, operationName string, fn func(txStore *Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.executeInTransaction(ctx, operationName, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}
