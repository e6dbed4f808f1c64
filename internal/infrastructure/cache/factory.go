package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	"shop-backend/pkg/cache"
)

// New chọn backend theo CACHE_DRIVER.
// Redis không kết nối được thì fallback về memory.
func New(cfg *config.Config) cache.Cache {
	if cfg.Cache.Driver != "redis" {
		log.Info().Msg("[CACHE] using in-process memory cache")
		return NewMemoryCache()
	}

	rc := NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CACHE] redis unavailable, falling back to memory cache")
		_ = rc.Close()
		return NewMemoryCache()
	}
	return rc
}
