package billing

import (
	"context"
	"sync"
	"time"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

// SnapshotTTL bounds how long a fetched usage snapshot stays fresh. A cached
// snapshot older than this is treated as absent and refetched.
const SnapshotTTL = 5 * time.Minute

// FetchFunc retrieves a fresh usage snapshot from the server
type FetchFunc func(ctx context.Context) (*api.BillingInfo, error)

// UsageCache caches the billing snapshot for SnapshotTTL of wall-clock time,
// so feature gates can consult it from any command without hammering the
// billing endpoint.
type UsageCache struct {
	fetch FetchFunc
	now   func() time.Time

	mu        sync.Mutex
	snapshot  *api.BillingInfo
	fetchedAt time.Time
}

// CacheOption configures a UsageCache
type CacheOption func(*UsageCache)

// WithClock replaces the wall clock (tests)
func WithClock(now func() time.Time) CacheOption {
	return func(c *UsageCache) { c.now = now }
}

// NewUsageCache creates a cache around the given fetch function
func NewUsageCache(fetch FetchFunc, opts ...CacheOption) *UsageCache {
	c := &UsageCache{
		fetch: fetch,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot, fetching only when the cache is empty or
// stale. Given a monotonically advancing clock this issues at most one
// network call per TTL window.
func (c *UsageCache) Get(ctx context.Context) (*api.BillingInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.now().Sub(c.fetchedAt) < SnapshotTTL {
		return c.snapshot, nil
	}

	info, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.snapshot = info
	c.fetchedAt = c.now()
	return info, nil
}

// Invalidate drops the cached snapshot, forcing the next Get to refetch.
// Called after a checkout so the new tier is visible immediately.
func (c *UsageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// Access fetches (or reuses) the snapshot and derives feature access from it
func (c *UsageCache) Access(ctx context.Context) (Access, error) {
	info, err := c.Get(ctx)
	if err != nil {
		return Access{}, err
	}
	return Derive(*info), nil
}
