package store

import (
	"errors"
	"fmt"

	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

var (
	// ErrNotFound is returned when the target row of a read, update, or
	// delete does not exist. An empty list result is not an error.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEntry is returned when a uniqueness constraint is violated.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrForeignKeyNotFound is returned when a referenced entity does not
	// exist.
	ErrForeignKeyNotFound = errors.New("referenced entity not found")

	// ErrNoFieldsToUpdate is returned by update operations called with an
	// empty field set, before any statement executes.
	ErrNoFieldsToUpdate = sqlbuilder.ErrNoFields

	// ErrRuleViolation is returned when a domain rule forbids the operation,
	// checked before the datastore is touched.
	ErrRuleViolation = errors.New("domain rule violation")

	// ErrInternal wraps any datastore failure that is not a recognized
	// constraint violation. Never retried here; surfaced as-is.
	ErrInternal = errors.New("internal datastore failure")
)

// QueryError carries the statement that failed, for diagnostics.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
