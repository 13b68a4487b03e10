package cache

import (
	"context"
	"time"
)

// NullCache stands in when caching is off: every Get misses and every
// write is dropped. Reason records why, for logs and status output.
type NullCache struct {
	Reason string
}

// NewNullCache returns a cache that keeps nothing. The reason may be empty.
func NewNullCache(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

// String describes the cache as "disabled", with the reason if known.
func (c *NullCache) String() string {
	if c.Reason == "" {
		return "disabled"
	}
	return "disabled (" + c.Reason + ")"
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (c *NullCache) Delete(context.Context, string) error { return nil }
func (c *NullCache) Clear(context.Context) error { return nil }
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
