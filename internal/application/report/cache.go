package report

import (
	"context"
	"time"
)

// ReportCache caches assembled report payloads keyed by report name and
// parameters. Implementations must treat a miss as (false, nil); errors
// are reserved for backend failures, which callers degrade around.
type ReportCache interface {
	// Get loads the cached payload for key into dest. It returns false
	// when the key is absent or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// NoOpReportCache is used when no cache backend is configured. Every
// lookup misses and writes are discarded, so reports always hit the
// database directly.
type NoOpReportCache struct{}

// NewNoOpReportCache creates a cache that never stores anything
func NewNoOpReportCache() *NoOpReportCache {
	return &NoOpReportCache{}
}

// Get always reports a miss
func (c *NoOpReportCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

// Set discards the value
func (c *NoOpReportCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

var _ ReportCache = (*NoOpReportCache)(nil)
