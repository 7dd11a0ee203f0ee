package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for the constraint classes the catalog relies on.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// classify maps a datastore failure to a domain error kind. Uniqueness
// violations become ErrDuplicateEntry, referential violations become
// ErrForeignKeyNotFound, a missing row stays ErrNotFound, and anything else
// is wrapped as ErrInternal with the original error preserved in the chain.
// Pure translation: no retries, no compensating actions.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKeyNotFound, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%w: %w", ErrInternal, err)
}
