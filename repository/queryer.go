// Package repository persists Kotosiro's domain entities in Postgres. Each
// aggregate gets its own interface, implemented against a Queryer so the
// same methods run either directly against the pool or inside a
// transaction.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Queryer is the subset of pgxpool.Pool and pgx.Tx that repositories need.
// Passing a pgx.Tx here runs the statement as part of that transaction;
// passing the pool runs it standalone.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgx.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
