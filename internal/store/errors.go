package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorageUnavailable means the underlying engine could not be
	// opened. Fatal to the session.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraintViolation means a unique index collided with a
	// different record. Recoverable; the write is aborted.
	ErrConstraintViolation = errors.New("unique constraint violation")

	// ErrUnknownCollection and ErrUnknownIndex flag programming errors:
	// a name that was never declared in the schema.
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownIndex      = errors.New("unknown index")
)

// mapSQLiteErr translates driver constraint errors into the store
// taxonomy. All other errors propagate unchanged.
func mapSQLiteErr(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
