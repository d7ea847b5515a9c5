// Package repository defines error types that are reused across multiple
// repositories. Handlers use errors.Is / errors.As on these values to
// choose between a 404, a field error and a generic failure message.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every "row does not exist" error returned
// from this package.
var ErrNotFound = errors.New("not found")

var (
	// ErrVenueNotFound is returned when a venue id does not exist.
	ErrVenueNotFound = fmt.Errorf("venue %w", ErrNotFound)
	// ErrArtistNotFound is returned when an artist id does not exist.
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
)

// StoreError reports a failed database operation.  The transaction the
// operation ran in has already been rolled back when a StoreError is
// returned.
type StoreError struct {
	Op     string // create, get, list, update, delete ...
	Entity string // venue, artist, show
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// wrap converts a raw driver error into a StoreError.  Not-found errors
// pass through untouched so callers can map them to 404.
func wrap(op, entity string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Entity: entity, Err: err}
}
