package ports

import (
	"context"
	"time"
)

// KV is a content-addressed TTL cache. Get returns (nil, nil) on a miss;
// callers treat backend errors as misses too. Put failures must never fail
// the surrounding request.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
