// internal/adapters/db/errors.go
package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ammerola/parts-be/internal/core/domain"
)

// PostgreSQL SQLSTATE codes the repository reacts to.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgNumericOutOfRange   = "22003"
	pgStringDataTooLong   = "22001"
	pgInvalidTextRepr     = "22P02"
	pgSerializationFailed = "40001"
	pgDeadlockDetected    = "40P01"
)

var (
	// ErrDuplicateKey is returned when a unique constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrSerialization is returned when a transaction lost a serialization
	// race or was chosen as a deadlock victim.
	ErrSerialization = errors.New("serialization failure")
)

// classifyError turns driver errors into errors callers can match with
// errors.Is. Errors it does not recognise are returned unchanged.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.ConstraintName)
	case pgCheckViolation, pgNotNullViolation, pgNumericOutOfRange, pgStringDataTooLong, pgInvalidTextRepr:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
	case pgSerializationFailed, pgDeadlockDetected:
		return fmt.Errorf("%w: %s", ErrSerialization, pgErr.Message)
	default:
		return err
	}
}
