package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, int64(1), cfg.Location.DefaultCountryID)
	assert.Equal(t, 3, cfg.Location.ProvinceTreeDepth)
	assert.False(t, cfg.Queue.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "REDIS")
	t.Setenv("QUEUE_ENABLED", "true")
	t.Setenv("DEFAULT_COUNTRY_ID", "84")
	t.Setenv("PROVINCE_TREE_DEPTH", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.True(t, cfg.Queue.Enabled)
	assert.Equal(t, int64(84), cfg.Location.DefaultCountryID)
	assert.Equal(t, 3, cfg.Location.ProvinceTreeDepth)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown cache driver", map[string]string{"CACHE_DRIVER": "memcached"}, "CACHE_DRIVER"},
		{"queue with memory cache", map[string]string{"QUEUE_ENABLED": "true", "CACHE_DRIVER": "memory"}, "QUEUE_ENABLED"},
		{"queue with default cache driver", map[string]string{"QUEUE_ENABLED": "true"}, "CACHE_DRIVER=redis"},
		{"negative depth", map[string]string{"PROVINCE_TREE_DEPTH": "-1"}, "PROVINCE_TREE_DEPTH"},
		{"production default secret", map[string]string{"APP_ENV": "production", "DB_PASSWORD": "x"}, "JWT_SECRET"},
		{"production schema bootstrap", map[string]string{
			"APP_ENV": "production", "DB_PASSWORD": "x", "JWT_SECRET": "s", "DB_ENSURE_SCHEMA": "true",
		}, "DB_ENSURE_SCHEMA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("DB_MAX_RETRIES", "2")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 2, cfg.MaxRetries)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
