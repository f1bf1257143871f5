// Package cache provides validator-cache storage for the engine: the ETag and
// Last-Modified values a resource last produced, keyed by request path.
// The engine records validators after successful GET/HEAD traversals and
// drops them after mutating ones, so resources can answer cheap conditional
// requests without recomputing expensive validators.
package cache

import (
	"errors"
	"time"
)

// Entry holds the cached validators for one key.
type Entry struct {
	// ETag is the opaque entity tag, without quotes. Empty when the
	// resource supplies none.
	ETag string
	// LastModified is the resource's last modification time.
	// Zero when the resource supplies none.
	LastModified time.Time
	// StoredAt is when the entry was recorded.
	StoredAt time.Time
}

// Store persists validator entries. Implementations must be safe for
// concurrent use; many traversals may read and write at once.
type Store interface {
	// Put stores the entry for a key, overwriting any previous one.
	Put(key string, e Entry) error

	// Get retrieves the entry for a key.
	// Returns ErrNotFound if no entry exists.
	Get(key string) (Entry, error)

	// Delete removes the entry for a key.
	// Returns nil if no entry exists.
	Delete(key string) error

	// Clear removes all entries.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no entry exists for the key.
	ErrNotFound = errors.New("validator entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("validator store closed")
)
