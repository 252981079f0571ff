// Package storage wires a Postgres connection pool and applies the schema
// Kotosiro's repositories expect, mirroring the pool-wrapper pattern used
// elsewhere in the codebase for non-ORM SQL access.
package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Postgres wraps a pgx connection pool. The *pgxpool.Pool returned by Pool
// satisfies repository.Queryer directly, so repository implementations can
// be handed either the pool or a transaction acquired from it.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to connString, pings it, and idempotently applies the
// schema.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Pool returns the underlying pool, for handing to repository methods and
// for starting transactions.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

// Close releases all pooled connections.
func (p *Postgres) Close() { p.pool.Close() }
