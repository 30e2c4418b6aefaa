package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/settings"
)

// RedisSettingCache implements settings.SettingCache using Redis.
// This is suitable for multi-instance deployments where an update on one
// instance must invalidate the cached value on the others.
type RedisSettingCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSettingCache creates a new Redis-based setting cache
func NewRedisSettingCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisSettingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl == 0 {
		ttl = settings.DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisSettingCache{
		client:    client,
		keyPrefix: "setting:",
		ttl:       ttl,
		logger:    logger,
	}, nil
}

// NewRedisSettingCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSettingCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSettingCache {
	if keyPrefix == "" {
		keyPrefix = "setting:"
	}
	if ttl == 0 {
		ttl = settings.DefaultCacheTTL
	}
	return &RedisSettingCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    zap.NewNop(),
	}
}

// Get retrieves a setting from Redis
func (c *RedisSettingCache) Get(ctx context.Context, key string) (*settings.Setting, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis setting cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}

	var setting settings.Setting
	if err := json.Unmarshal(data, &setting); err != nil {
		// Corrupt entry, drop it
		c.client.Del(ctx, c.keyPrefix+key)
		return nil, false
	}
	return &setting, true
}

// Set stores a setting in Redis with the configured TTL
func (c *RedisSettingCache) Set(ctx context.Context, setting *settings.Setting) {
	if setting == nil {
		return
	}

	data, err := json.Marshal(setting)
	if err != nil {
		c.logger.Warn("failed to serialize setting for cache",
			zap.String("key", setting.Key),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.keyPrefix+setting.Key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis setting cache write failed",
			zap.String("key", setting.Key),
			zap.Error(err))
	}
}

// Invalidate drops a key from Redis
func (c *RedisSettingCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		c.logger.Warn("redis setting cache invalidation failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisSettingCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSettingCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisSettingCache implements SettingCache
var _ settings.SettingCache = (*RedisSettingCache)(nil)
