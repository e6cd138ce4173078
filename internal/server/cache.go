package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/donor-home-service/internal/config"
	"github.com/preston-bernstein/donor-home-service/internal/store"
)

var newRedisStore = store.NewRedisStore

// buildCache returns the Redis cache when configured and reachable, the in-memory cache otherwise.
// The returned closer is nil for the in-memory cache.
func buildCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (store.Cache, func() error) {
	if !cfg.Redis.Enabled() {
		return store.NewMemoryStore(), nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	rs, err := newRedisStore(pingCtx, store.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("redis unavailable, caching in memory", slog.String("addr", cfg.Redis.Addr), "err", err)
		}
		return store.NewMemoryStore(), nil
	}
	if logger != nil {
		logger.Info("caching featured campaigns in redis", slog.String("addr", cfg.Redis.Addr))
	}
	return rs, rs.Close
}
