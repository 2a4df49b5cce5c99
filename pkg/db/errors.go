package db

import "errors"

// Sentinel errors shared by all store implementations. Callers test for
// them with errors.Is; wrapped messages carry the detail.
var (
	// ErrNotFound is returned when a record does not exist for the tenant.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for requests rejected before any storage
	// access, such as an update with no recognized fields or an assignment
	// request missing a user's shift group.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the storage layer rejects a write due to
	// a uniqueness or overlap constraint.
	ErrConflict = errors.New("conflict")
)
