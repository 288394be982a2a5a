// Package cache provides a small multi-backend cache abstraction.
//
// Backends:
//   - memory (in-process, dev/testing)
//   - redis (distributed, production)
//
// Besides plain get/set it exposes an atomic counter primitive, which the
// rate limiter uses for its fixed windows.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("cache: not found")

// Client defines the cache operations.
type Client interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. ttl 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Incr atomically increments the counter at key, creating it with the
	// given ttl on first use, and returns the new value.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
