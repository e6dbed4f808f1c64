package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/shared/response"
)

// ClearFunc xóa một nhóm snapshot (province trees, brand list, ...)
type ClearFunc func(ctx context.Context) error

// CacheHandler - DELETE /caches/clear
type CacheHandler struct {
	names   []string
	clearer map[string]ClearFunc
}

func NewCacheHandler() *CacheHandler {
	return &CacheHandler{clearer: make(map[string]ClearFunc)}
}

// Register thêm một nhóm cache; gọi lúc wiring, trước khi serve
func (h *CacheHandler) Register(name string, fn ClearFunc) *CacheHandler {
	if _, ok := h.clearer[name]; !ok {
		h.names = append(h.names, name)
	}
	h.clearer[name] = fn
	return h
}

// ClearAll chạy hết các nhóm đã đăng ký; nhóm lỗi không chặn nhóm sau.
func (h *CacheHandler) ClearAll(c *gin.Context) {
	ctx := c.Request.Context()
	cleared := make([]string, 0, len(h.names))
	failed := make(map[string]string)

	for _, name := range h.names {
		if err := h.clearer[name](ctx); err != nil {
			log.Error().Err(err).Str("cache", name).Msg("clear cache failed")
			failed[name] = err.Error()
			continue
		}
		cleared = append(cleared, name)
	}

	if len(failed) > 0 {
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeInternalServer,
			"Some caches could not be cleared", gin.H{"cleared": cleared, "failed": failed})
		return
	}
	response.Success(c, http.StatusOK, "Caches cleared", gin.H{"cleared": cleared})
}
