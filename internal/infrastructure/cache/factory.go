package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/settings"
	"github.com/invoicemgr/backend/internal/infrastructure/config"
)

// SettingCacheFactory creates setting caches based on configuration
type SettingCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SettingCacheFactoryOption is a functional option for configuring the factory
type SettingCacheFactoryOption func(*SettingCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SettingCacheFactoryOption {
	return func(f *SettingCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the cache TTL
func WithTTL(ttl time.Duration) SettingCacheFactoryOption {
	return func(f *SettingCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) SettingCacheFactoryOption {
	return func(f *SettingCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSettingCacheFactory creates a new factory
func NewSettingCacheFactory(cfg config.RedisConfig, opts ...SettingCacheFactoryOption) *SettingCacheFactory {
	f := &SettingCacheFactory{
		redisConfig:           cfg,
		ttl:                   settings.DefaultCacheTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based setting cache
func (f *SettingCacheFactory) CreateRedisCache() (settings.SettingCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisSettingCache(redisCfg, f.ttl, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis setting cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory setting cache.
// Suitable for single-instance deployments and testing.
func (f *SettingCacheFactory) CreateInMemoryCache() settings.SettingCache {
	return NewInMemorySettingCache(
		WithInMemoryTTL(f.ttl),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache creates a setting cache based on whether Redis is enabled and
// reachable. When Redis is disabled or unavailable and fallback is allowed,
// the in-memory cache is used instead.
func (f *SettingCacheFactory) CreateCache() (settings.SettingCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory setting cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis setting cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for setting cache but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory setting cache. "+
		"Setting updates will not invalidate other instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
