// Package cache stores pipeline results between runs.
//
// The pipeline caches the resolved graph (as JSON) under a key derived
// from the exact source text and build options, and rendered artifacts
// under a key derived from the graph and output format. Editing any input
// file, style included, changes the key, so entries never need
// invalidating; they only expire.
//
// Backends:
//   - [FileCache]: one file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for CI runners and teams
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry this cache owns.
	Clear(ctx context.Context) error
	Close() error
}
