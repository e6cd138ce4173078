// Package store holds short-lived cached payloads keyed by string.
package store

import (
	"context"
	"time"
)

// Cache stores opaque values with a time-to-live. A zero ttl means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
