package storage

import (
	"context"
	"time"
)

// Storage is a key-value store with per-key expiration.
// Implementations must make SetIfAbsent atomic; locking relies on it.
type Storage interface {
	// Get returns the value for key, or model.ErrKeyNotFound if absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// SetIfAbsent stores value only if key is absent, reporting whether it did
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}
