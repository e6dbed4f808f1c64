package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
	types "shop-backend/internal/shared"
	"shop-backend/internal/shared/metrics"
	"shop-backend/pkg/cache"
)

const treeCacheKeyPrefix = "location:province_tree:"

// TreeCacheKey là key của snapshot một country
func TreeCacheKey(countryID int64) string {
	return fmt.Sprintf("%s%d", treeCacheKeyPrefix, countryID)
}

// TreeCache - Cache Invalidation Hook cho province tree.
// Snapshot không có TTL; chỉ bị xóa bởi Invalidate hoặc Clear.
type TreeCache struct {
	cache     cache.Cache
	provinces repository.ProvinceRepository
	queue     TaskEnqueuer
}

func NewTreeCache(c cache.Cache, provinces repository.ProvinceRepository, queue TaskEnqueuer) *TreeCache {
	return &TreeCache{cache: c, provinces: provinces, queue: queue}
}

// GetTree trả snapshot từ cache; miss thì rebuild từ store.
// Lỗi cache chỉ được log, store vẫn là nguồn sự thật.
func (t *TreeCache) GetTree(ctx context.Context, countryID int64) (*model.ProvinceTree, error) {
	var tree model.ProvinceTree
	found, err := t.cache.Get(ctx, TreeCacheKey(countryID), &tree)
	if err != nil {
		log.Warn().Err(err).Int64("country_id", countryID).Msg("province tree cache read failed")
	}
	if found {
		metrics.ProvinceTreeCacheHitsTotal.Inc()
		return &tree, nil
	}

	metrics.ProvinceTreeCacheMissesTotal.Inc()
	return t.Rebuild(ctx, countryID)
}

// Rebuild đọc ListByCountry, build index một lượt rồi ghi đè snapshot.
func (t *TreeCache) Rebuild(ctx context.Context, countryID int64) (*model.ProvinceTree, error) {
	start := time.Now()

	nodes, err := t.provinces.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("rebuild province tree %d: %w", countryID, err)
	}
	tree := model.BuildTree(countryID, nodes)

	if err := t.cache.Set(ctx, TreeCacheKey(countryID), tree, cache.NoExpiration); err != nil {
		log.Warn().Err(err).Int64("country_id", countryID).Msg("province tree cache write failed")
	}

	metrics.ProvinceTreeRebuildDurationSeconds.Observe(time.Since(start).Seconds())
	log.Debug().
		Int64("country_id", countryID).
		Int("nodes", tree.Len()).
		Dur("took", time.Since(start)).
		Msg("province tree rebuilt")
	return tree, nil
}

// Invalidate xóa snapshot của country. Idempotent, không trả lỗi:
// lần đọc kế tiếp sẽ miss và rebuild.
func (t *TreeCache) Invalidate(ctx context.Context, countryID int64) {
	if err := t.cache.Delete(ctx, TreeCacheKey(countryID)); err != nil {
		metrics.ProvinceTreeInvalidationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Int64("country_id", countryID).Msg("province tree invalidation failed")
		return
	}
	metrics.ProvinceTreeInvalidationsTotal.WithLabelValues("ok").Inc()

	if t.queue == nil {
		return
	}
	payload, _ := json.Marshal(types.WarmProvinceTreePayload{CountryID: countryID})
	task := asynq.NewTask(types.TypeWarmProvinceTree, payload)
	if _, err := t.queue.EnqueueContext(ctx, task,
		asynq.Queue(types.QueueLocation),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	); err != nil {
		log.Warn().Err(err).Int64("country_id", countryID).Msg("enqueue province tree warm-up failed")
	}
}

// Clear xóa mọi snapshot province tree
func (t *TreeCache) Clear(ctx context.Context) error {
	if err := t.cache.DeletePattern(ctx, treeCacheKeyPrefix+"*"); err != nil {
		return fmt.Errorf("clear province trees: %w", err)
	}
	return nil
}
