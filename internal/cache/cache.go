// Package cache memoizes rendered pages for a short interval. Writers never
// invalidate; stale pages age out when the TTL elapses, or Clear wipes
// everything at once.
package cache

import (
	"context"
	"time"
)

// PageCache stores rendered markup by key.
type PageCache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Clear drops every cached page.
	Clear(ctx context.Context) error
}
