package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested applicant does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoSelection indicates a decision was attempted without a selected applicant.
	ErrNoSelection = errors.New("no applicant selected")

	// ErrUnknownStatus indicates a status value outside the five known statuses.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnsupportedSource indicates a backing source format that has no adapter.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNotLoaded indicates the store was used before records were loaded.
	ErrNotLoaded = errors.New("records not loaded")
)

// LoadError reports a backing source that cannot be used because
// required columns are absent.
type LoadError struct {
	// Path identifies the backing source.
	Path string

	// Missing lists the required columns that were not found, in contract order.
	Missing []string
}

// Error implements error.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// PersistError reports that a decision was applied in memory but the
// backing source could not be rewritten.
type PersistError struct {
	// Path identifies the backing source.
	Path string

	// Err is the underlying write failure.
	Err error
}

// Error implements error.
func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying write failure.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err is or wraps a PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
