package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	types "shop-backend/internal/shared"
	"shop-backend/pkg/logger"
)

// TreeWarmer là phần của ProvinceService mà worker cần
type TreeWarmer interface {
	WarmTree(ctx context.Context, countryID int64) error
	WarmAllTrees(ctx context.Context) (int, error)
}

// WarmTreeHandler xử lý location:warm_province_tree (enqueue sau mỗi lần invalidate)
type WarmTreeHandler struct {
	warmer TreeWarmer
}

func NewWarmTreeHandler(warmer TreeWarmer) *WarmTreeHandler {
	return &WarmTreeHandler{warmer: warmer}
}

func (h *WarmTreeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload types.WarmProvinceTreePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal warm tree payload failed", err)
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if payload.CountryID <= 0 {
		return fmt.Errorf("invalid country_id %d: %w", payload.CountryID, asynq.SkipRetry)
	}

	if err := h.warmer.WarmTree(ctx, payload.CountryID); err != nil {
		return fmt.Errorf("warm province tree %d: %w", payload.CountryID, err)
	}

	log.Info().Int64("country_id", payload.CountryID).Msg("Province tree warmed")
	return nil
}

// WarmAllTreesHandler xử lý location:warm_all_province_trees (scheduler)
type WarmAllTreesHandler struct {
	warmer TreeWarmer
}

func NewWarmAllTreesHandler(warmer TreeWarmer) *WarmAllTreesHandler {
	return &WarmAllTreesHandler{warmer: warmer}
}

func (h *WarmAllTreesHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	n, err := h.warmer.WarmAllTrees(ctx)
	if err != nil {
		return fmt.Errorf("warm all province trees (done %d): %w", n, err)
	}
	log.Info().Int("countries", n).Msg("All province trees warmed")
	return nil
}
