package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/brand/model"
	"shop-backend/internal/domains/brand/service"
	"shop-backend/internal/shared/response"
)

// BrandHandler handles HTTP requests for brand domain
type BrandHandler struct {
	service service.Service
}

func NewBrandHandler(service service.Service) *BrandHandler {
	return &BrandHandler{service: service}
}

// Grid handles POST /brands/grid
func (h *BrandHandler) Grid(c *gin.Context) {
	var req model.BrandQueryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request payload")
			return
		}
	}
	req.Normalize()

	items, total, err := h.service.Grid(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, "Brands retrieved successfully", items,
		response.NewMeta(req.Page, req.Limit, total))
}

// ListPublished handles GET /brands (public, cached)
func (h *BrandHandler) ListPublished(c *gin.Context) {
	items, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Brands retrieved successfully", items)
}

// Get handles GET /brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Brand retrieved successfully", b)
}

// Create handles POST /brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Brand created successfully", b)
}

// Update handles PUT /brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Brand updated successfully", b)
}

// Delete handles DELETE /brands/:id
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := brandID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Brand deleted successfully", nil)
}

// ClearCache handles POST /brands/clear-cache
func (h *BrandHandler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Brand cache cleared", nil)
}

func handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationError(c, err)
		return
	}
	status, code, message := model.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("brand request failed")
	}
	response.ErrorResponse(c, status, code, message)
}

func brandID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid brand id")
		return 0, false
	}
	return id, true
}
