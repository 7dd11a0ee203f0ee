// Package store implements the datastore operations of the game catalog:
// criteria-driven listing, sparse mutations, cascading deletion, and
// classification of constraint failures into domain error kinds.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx execution methods the store runs statements
// on. Both *pgxpool.Pool and pgx.Tx satisfy it, so every operation reads the
// same whether it runs standalone or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a Querier that can also open transactions.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store provides access to the catalog datastore. Each logical operation
// acquires one pooled connection for its duration and releases it on every
// exit path; multi-statement operations run inside exactly one transaction.
type Store struct {
	db  Conn
	log *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a Store on a pgx connection pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{db: pool, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect creates a pool from a connection URL, verifies it, and returns a
// Store on it. The caller owns the returned pool and must Close it.
func Connect(ctx context.Context, url string, opts ...Option) (*Store, *pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(pool, opts...), pool, nil
}

// withTx runs fn inside a single transaction, committing only if fn and the
// commit both succeed. Any error rolls the whole transaction back before
// propagating; no partial work survives.
func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return classify(err)
	}
	// No-op once committed.
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// exec runs a statement and returns the number of affected rows, passing any
// failure through the classifier exactly once.
func (s *Store) exec(ctx context.Context, q Querier, sql string, args []any) (int64, error) {
	s.log.Debug("exec", "sql", sql)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, classify(&QueryError{Query: sql, Err: err})
	}
	return tag.RowsAffected(), nil
}

// execOne runs a statement that must affect a row; zero rows affected means
// the target row was not found.
func (s *Store) execOne(ctx context.Context, q Querier, sql string, args []any) error {
	affected, err := s.exec(ctx, q, sql, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
