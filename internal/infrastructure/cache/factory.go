package cache

import (
	"context"

	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns the Redis cache when configured and reachable, otherwise a
// process-local cache. The returned close func is always safe to call.
func New(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (appshared.Cache, func() error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled {
		log.Info("Redis disabled, using in-memory cache")
		return NewMemoryCache(), func() error { return nil }
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewMemoryCache(), func() error { return nil }
	}

	log.Info("Redis cache connected", zap.String("addr", cfg.Addr()))
	rc := NewRedisCache(client, defaultKeyPrefix, log)
	return rc, rc.Close
}
