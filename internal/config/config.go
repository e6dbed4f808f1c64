package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Queue    QueueConfig
	JWT      JWTConfig
	Location LocationConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	// EnsureSchema tạo bảng khi khởi động (chỉ dùng cho dev/local).
	EnsureSchema bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// CacheConfig chọn backend cho tree snapshots và brand list.
type CacheConfig struct {
	Driver string // memory | redis
}

type QueueConfig struct {
	Enabled bool
	// WarmAllCron là lịch rebuild toàn bộ province tree (asynq scheduler).
	WarmAllCron string
	// Concurrency số goroutine xử lý task trong cmd/worker.
	Concurrency int
	// HealthAddr là địa chỉ health server của worker.
	HealthAddr string
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	AccessTokenExpiry int // minutes
}

type LocationConfig struct {
	// DefaultCountryID dùng cho user address khi request không chỉ định country.
	DefaultCountryID int64
	// ProvinceTreeDepth mặc định cho GET .../tree (0 = không giới hạn).
	ProvinceTreeDepth int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:         getEnv("APP_NAME", "Shop API"),
			Environment:  getEnv("APP_ENV", "development"),
			Port:         getEnv("APP_PORT", "8080"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			EnsureSchema: getEnvBool("DB_ENSURE_SCHEMA", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "shop"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
		},
		Queue: QueueConfig{
			Enabled:     getEnvBool("QUEUE_ENABLED", false),
			WarmAllCron: getEnv("QUEUE_WARM_ALL_CRON", "0 */6 * * *"),
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
			HealthAddr:  getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:            getEnv("JWT_ISSUER", "shop-backend"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 15),
		},
		Location: LocationConfig{
			DefaultCountryID:  int64(getEnvInt("DEFAULT_COUNTRY_ID", 1)),
			ProvinceTreeDepth: getEnvInt("PROVINCE_TREE_DEPTH", 3),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", c.Cache.Driver)
	}
	// worker warm-up chỉ tới được cache của API khi dùng chung redis
	if c.Queue.Enabled && c.Cache.Driver == "memory" {
		return fmt.Errorf("QUEUE_ENABLED requires CACHE_DRIVER=redis, memory cache is per-process")
	}
	if c.Location.ProvinceTreeDepth < 0 {
		return fmt.Errorf("PROVINCE_TREE_DEPTH must not be negative")
	}
	if c.Location.DefaultCountryID <= 0 {
		return fmt.Errorf("DEFAULT_COUNTRY_ID must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.App.EnsureSchema {
			return fmt.Errorf("DB_ENSURE_SCHEMA must be disabled in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
