package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheUnavailable được trả về khi backend (vd: Redis) không kết nối được.
var ErrCacheUnavailable = errors.New("cache unavailable")

// NoExpiration giữ key cho tới khi bị xóa tường minh.
const NoExpiration time.Duration = 0

// Cache interface định nghĩa contract cho cache layer.
// Implementations: Redis (infrastructure/cache.RedisCache) và in-process memory
// (infrastructure/cache.MemoryCache). Values được lưu dưới dạng JSON.
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest.
	// found = false khi cache miss, dest không bị thay đổi.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache. ttl = NoExpiration nghĩa là không hết hạn.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache; key không tồn tại không phải lỗi.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key match glob pattern (vd: "location:province_tree:*").
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
