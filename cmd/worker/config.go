package main

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	"shop-backend/pkg/container"
)

// Config holds all configuration for the worker
type Config struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	HealthAddr  string
	WarmAllCron string
}

// loadConfig lấy phần config worker cần từ config chung.
// Worker ghi snapshot vào cache, nên cache phải là redis dùng chung với API.
func loadConfig(appCfg *config.Config) (*Config, error) {
	if appCfg.Cache.Driver != "redis" {
		return nil, fmt.Errorf("worker requires CACHE_DRIVER=redis, got %q", appCfg.Cache.Driver)
	}

	cfg := &Config{
		RedisOpt:    container.RedisClientOpt(appCfg),
		Concurrency: appCfg.Queue.Concurrency,
		HealthAddr:  appCfg.Queue.HealthAddr,
		WarmAllCron: appCfg.Queue.WarmAllCron,
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}

	log.Info().
		Str("redis", cfg.RedisOpt.Addr).
		Int("concurrency", cfg.Concurrency).
		Str("warm_all_cron", cfg.WarmAllCron).
		Msg("[Config] Worker config loaded")

	if !appCfg.Queue.Enabled {
		log.Warn().Msg("[Config] QUEUE_ENABLED=false: API will not enqueue warm-up tasks, only scheduled jobs run")
	}

	return cfg, nil
}
