package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput is a generic sentinel for rejected input.
	ErrInvalidInput = errors.New("invalid input")
)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505). Upserts go through ON CONFLICT so this only
// fires for writes that bypass the natural-key clause.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
