// Package sentinel holds the store-level errors. Stores return these,
// optionally wrapped; services translate them into coded domain errors so
// transport never sees raw store failures.
package sentinel

import "errors"

var (
	// ErrNotFound means the row does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness or state constraint rejected the write.
	ErrConflict = errors.New("conflict")
)
