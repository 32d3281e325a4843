package shared

import (
	"context"
	"time"
)

// Cache is a best-effort byte cache. Implementations swallow their own
// failures: a broken cache behaves like an empty one.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// NopCache never hits
type NopCache struct{}

// Get always misses
func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set discards the value
func (NopCache) Set(context.Context, string, []byte, time.Duration) {}

// Delete does nothing
func (NopCache) Delete(context.Context, ...string) {}

var _ Cache = NopCache{}
