package cache

import (
	"context"
	"time"
)

// Cache is the contract repositories use for read-through caching.
// Implementations must treat a miss as (false, nil), never as an error.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false leaves dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
