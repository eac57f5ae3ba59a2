// Package db defines the key-value store abstraction used for caching
// rendered-query results, with interchangeable Redis and in-process
// drivers selected at startup.
package db

import (
	"context"
	"time"
)

// Store is a minimal key-value cache store.
type Store interface {
	// Get retrieves a value. Returns ErrKeyNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// WaitForReady polls until the store responds or timeout expires.
	WaitForReady(ctx context.Context, timeout time.Duration) error
	// Close releases the underlying resources.
	Close()
}
