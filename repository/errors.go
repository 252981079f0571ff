package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict wraps a Postgres integrity constraint violation (unique or
// foreign key, SQLSTATE class 23). ErrInternal wraps anything else.
var (
	ErrConflict = errors.New("integrity constraint violation")
	ErrInternal = errors.New("storage error")
)

// Classify inspects a pgx error and returns it wrapped in ErrConflict when
// the underlying Postgres error class is 23 (integrity constraint
// violation), or ErrInternal otherwise. A nil error passes through as nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrInternal, err)
}
