package settings

import (
	"context"
	"time"
)

// DefaultCacheTTL is how long a cached setting stays fresh
const DefaultCacheTTL = 5 * time.Minute

// SettingCache caches settings to keep hot keys like the default VAT
// rate off the database on every invoice calculation
type SettingCache interface {
	// Get returns the cached setting and true on a hit
	Get(ctx context.Context, key string) (*Setting, bool)

	// Set stores a setting in the cache
	Set(ctx context.Context, setting *Setting)

	// Invalidate drops a key from the cache
	Invalidate(ctx context.Context, key string)
}
