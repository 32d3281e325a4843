package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "travel:"

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisCache is the shared cache for rate tables and tracking responses.
// Every Redis failure is logged and reported as a miss.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	log       *zap.Logger
}

// NewRedisCache wraps an existing client
func NewRedisCache(client *redis.Client, keyPrefix string, log *zap.Logger) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache{client: client, keyPrefix: keyPrefix, log: log.Named("cache")}
}

// Get implements appshared.Cache
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set implements appshared.Cache
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete implements appshared.Cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ appshared.Cache = (*RedisCache)(nil)
