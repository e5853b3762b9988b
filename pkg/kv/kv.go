// Package kv abstracts the key-value backend used for access-token storage,
// so the token store can run against Valkey/Redis in production and an
// in-memory map in tests without changing the adapter.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal key-value surface the token store needs. Values are
// opaque byte slices; a zero TTL means the key never expires.
type Store interface {
	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// SetNX stores the value only if key is absent. Reports whether it
	// was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Close releases the backend connection.
	Close() error
}
