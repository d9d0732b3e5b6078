package providers

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key has no value.
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider is the outbound port for the parse-result cache. Read and
// write only; entries age out through their TTL rather than being evicted
// by callers.
type CacheProvider interface {
	// Get retrieves the value for key, or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
