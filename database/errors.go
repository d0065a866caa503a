package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrConnection   = errors.New("database unavailable")
	ErrUnknownTable = errors.New("unknown table")

	// ErrConstraintViolation is wrapped by every schema constraint failure
	ErrConstraintViolation = errors.New("constraint violation")
	ErrDuplicateNativeID   = fmt.Errorf("%w: native id already in use", ErrConstraintViolation)
	ErrUnknownContact      = fmt.Errorf("%w: contact does not exist", ErrConstraintViolation)

	// ErrBatchFailed means a batch save was rolled back and nothing was stored
	ErrBatchFailed = errors.New("batch save failed")

	ErrInvalidCategory = errors.New("invalid category")
)

// classify maps SQLite constraint failures onto the package sentinels,
// keeping the driver error in the chain
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return fmt.Errorf("%w: %w", ErrDuplicateNativeID, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %w", ErrUnknownContact, err)
	}

	if sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}
