package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/settings"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemorySettingCache implements settings.SettingCache using in-memory
// storage. Suitable for single-instance deployments; use the Redis-backed
// cache when multiple instances must see invalidations.
type InMemorySettingCache struct {
	entries sync.Map // map[string]*cacheEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{} // Channel to stop the cleanup goroutine
	stopped int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached setting with expiration time
type cacheEntry struct {
	value     *settings.Setting
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySettingCacheOption is a functional option for configuring the cache
type InMemorySettingCacheOption func(*InMemorySettingCache)

// WithInMemoryTTL sets the entry TTL
func WithInMemoryTTL(ttl time.Duration) InMemorySettingCacheOption {
	return func(c *InMemorySettingCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySettingCacheOption {
	return func(c *InMemorySettingCache) {
		c.logger = logger
	}
}

// NewInMemorySettingCache creates a new in-memory setting cache
func NewInMemorySettingCache(opts ...InMemorySettingCacheOption) *InMemorySettingCache {
	cache := &InMemorySettingCache{
		ttl:    settings.DefaultCacheTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a setting from cache
func (c *InMemorySettingCache) Get(ctx context.Context, key string) (*settings.Setting, bool) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("setting cache hit", zap.String("key", key))
			return entry.value, true
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("setting cache miss", zap.String("key", key))
	return nil, false
}

// Set stores a setting in cache
func (c *InMemorySettingCache) Set(ctx context.Context, setting *settings.Setting) {
	if setting == nil {
		return
	}

	entry := &cacheEntry{
		value:     setting,
		expiresAt: time.Now().Add(c.ttl),
	}

	c.entries.Store(setting.Key, entry)
	c.logger.Debug("cached setting",
		zap.String("key", setting.Key),
		zap.Duration("ttl", c.ttl))
}

// Invalidate drops a key from the cache
func (c *InMemorySettingCache) Invalidate(ctx context.Context, key string) {
	c.entries.Delete(key)
	c.logger.Debug("invalidated cached setting", zap.String("key", key))
}

// Close releases any resources held by the cache
func (c *InMemorySettingCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemorySettingCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemorySettingCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Count returns the number of entries in the cache
func (c *InMemorySettingCache) Count() (count int) {
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemorySettingCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemorySettingCache) doCleanup() {
	var removed int

	c.entries.Range(func(key, value any) bool {
		entry := value.(*cacheEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("cleaned up expired setting cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemorySettingCache implements SettingCache
var _ settings.SettingCache = (*InMemorySettingCache)(nil)
