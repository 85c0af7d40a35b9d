package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read. The CLI uses it for
// --no-cache and when no cache directory can be found, and the runner falls
// back to it when given no cache.
//
// Calls on a cancelled context return the context's error, as the Redis
// backend does, so a cancelled request is not mistaken for a miss.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(ctx context.Context, _ string) error {
	return ctx.Err()
}

func (NullCache) Close() error { return nil }
