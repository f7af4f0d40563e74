package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/pkg/config"
)

// Store is a string key-value cache with per-entry expiration
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New builds the store selected by cfg.Cache.Driver; it returns nil for the
// "none" driver so callers can skip caching entirely
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Cache.Driver {
	case config.CacheNone, "":
		return nil, nil
	case config.CacheMemory:
		logger.Debug("cache.init", zap.String("driver", config.CacheMemory))
		return NewMemoryStore(), nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("cache.init", zap.String("driver", config.CacheRedis), zap.String("addr", cfg.Redis.Addr))
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
