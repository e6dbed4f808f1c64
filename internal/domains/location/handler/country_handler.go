package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/service"
	"shop-backend/internal/shared/response"
)

type CountryHandler struct {
	service service.CountryService
}

func NewCountryHandler(service service.CountryService) *CountryHandler {
	return &CountryHandler{service: service}
}

// Grid handles POST /countries/grid
func (h *CountryHandler) Grid(c *gin.Context) {
	var req model.CountryQueryRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	req.Normalize()

	items, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, "Countries retrieved successfully", items,
		response.NewMeta(req.Page, req.Limit, total))
}

// ListAll handles GET /countries
func (h *CountryHandler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Countries retrieved successfully", items)
}

// Get handles GET /countries/:id
func (h *CountryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Country retrieved successfully", result)
}

// Create handles POST /countries
func (h *CountryHandler) Create(c *gin.Context) {
	var req model.CountryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Country created successfully", result)
}

// Update handles PUT /countries/:id
func (h *CountryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.CountryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Country updated successfully", result)
}

// Delete handles DELETE /countries/:id
func (h *CountryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Country deleted successfully", nil)
}
