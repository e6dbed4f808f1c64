package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("memory cache is rejected", func(t *testing.T) {
		_, err := loadConfig(&config.Config{Cache: config.CacheConfig{Driver: "memory"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_DRIVER=redis")
	})

	t.Run("redis cache with default concurrency", func(t *testing.T) {
		cfg, err := loadConfig(&config.Config{
			Redis: config.RedisConfig{Host: "localhost:6379"},
			Cache: config.CacheConfig{Driver: "redis"},
			Queue: config.QueueConfig{Enabled: true, WarmAllCron: "@every 1h"},
		})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.RedisOpt.Addr)
		assert.Equal(t, 10, cfg.Concurrency)
		assert.Equal(t, "@every 1h", cfg.WarmAllCron)
	})
}
