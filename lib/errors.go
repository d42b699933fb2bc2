package lib

import (
	"errors"
	"fmt"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Request-level error taxonomy. Handlers map these to HTTP statuses via the
// handling package.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DependencyWriteError marks a failed write against one of a product's
// dependent tables. The synchronizer runs all dependent writes in a single
// transaction, so one of these aborts the whole update.
type DependencyWriteError struct {
	Table     string
	Operation string
	Err       error
}

func (e *DependencyWriteError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Table, e.Operation, e.Err)
}

func (e *DependencyWriteError) Unwrap() error { return e.Err }

// WrapDependencyWrite annotates err with the dependent table and operation
// it came from; returns nil when err is nil.
func WrapDependencyWrite(table, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &DependencyWriteError{Table: table, Operation: operation, Err: err}
}

// MapPgError maps Postgres driver errors to taxonomy errors.
func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}

// GetDetailForLogging returns a short error description safe to log at
// debug level without dumping driver internals.
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
