package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brandRepo "shop-backend/internal/domains/brand/repository"
	brandService "shop-backend/internal/domains/brand/service"
	locationRepo "shop-backend/internal/domains/location/repository"
	locationService "shop-backend/internal/domains/location/service"
	infraCache "shop-backend/internal/infrastructure/cache"
	"shop-backend/pkg/cache"
)

func clearRequest(h *CacheHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/caches/clear", h.ClearAll)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/caches/clear", nil))
	return w
}

func TestCacheHandler_ClearsTreesAndBrands(t *testing.T) {
	ctx := context.Background()
	mc := infraCache.NewMemoryCache()
	store := locationRepo.NewMemoryStore()
	trees := locationService.NewTreeCache(mc, store.Provinces(), nil)
	brands := brandService.NewBrandService(brandRepo.NewMemoryRepository(), mc)

	require.NoError(t, mc.Set(ctx, locationService.TreeCacheKey(1), "x", cache.NoExpiration))
	require.NoError(t, mc.Set(ctx, locationService.TreeCacheKey(2), "x", cache.NoExpiration))
	require.NoError(t, mc.Set(ctx, brandService.ListCacheKey, "x", cache.NoExpiration))
	require.NoError(t, mc.Set(ctx, "unrelated", "x", cache.NoExpiration))

	h := NewCacheHandler().
		Register("province_trees", trees.Clear).
		Register("brands", brands.ClearCache)

	w := clearRequest(h)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, key := range []string{locationService.TreeCacheKey(1), locationService.TreeCacheKey(2), brandService.ListCacheKey} {
		exists, err := mc.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, key)
	}
	exists, _ := mc.Exists(ctx, "unrelated")
	assert.True(t, exists)
}

func TestCacheHandler_PartialFailure(t *testing.T) {
	called := false
	h := NewCacheHandler().
		Register("broken", func(context.Context) error { return errors.New("redis down") }).
		Register("ok", func(context.Context) error { called = true; return nil })

	w := clearRequest(h)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, called)
	assert.Contains(t, w.Body.String(), "redis down")
}
