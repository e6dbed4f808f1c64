package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/service"
	"shop-backend/internal/shared/response"
)

type ProvinceHandler struct {
	service          service.ProvinceService
	defaultCountryID int64
}

func NewProvinceHandler(service service.ProvinceService, defaultCountryID int64) *ProvinceHandler {
	return &ProvinceHandler{service: service, defaultCountryID: defaultCountryID}
}

// Grid handles POST /countries/provinces/grid/:countryId
func (h *ProvinceHandler) Grid(c *gin.Context) {
	countryID, ok := paramID(c, "countryId")
	if !ok {
		return
	}
	var req model.ProvinceQueryRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	req.Normalize()

	items, total, err := h.service.List(c.Request.Context(), countryID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, "Provinces retrieved successfully", items,
		response.NewMeta(req.Page, req.Limit, total))
}

// Tree handles GET /countries/provinces/tree/:countryId?depth=N
// Không truyền depth thì dùng PROVINCE_TREE_DEPTH.
func (h *ProvinceHandler) Tree(c *gin.Context) {
	countryID, ok := paramID(c, "countryId")
	if !ok {
		return
	}
	depth := -1
	if raw := c.Query("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			response.BadRequest(c, "Invalid depth")
			return
		}
		depth = d
	}

	nodes, err := h.service.GetTree(c.Request.Context(), countryID, depth)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Province tree retrieved successfully", nodes)
}

// Get handles GET /countries/provinces/:id
func (h *ProvinceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Province retrieved successfully", result)
}

// Create handles POST /countries/provinces/:countryId
func (h *ProvinceHandler) Create(c *gin.Context) {
	countryID, ok := paramID(c, "countryId")
	if !ok {
		return
	}
	var req model.ProvinceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), countryID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Province created successfully", result)
}

// Update handles PUT /countries/provinces/:id
func (h *ProvinceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.ProvinceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Province updated successfully", result)
}

// Delete handles DELETE /countries/provinces/:id
func (h *ProvinceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Province deleted successfully", nil)
}

// LocationLists handles GET /user-addresses/provinces?countryId=
func (h *ProvinceHandler) LocationLists(c *gin.Context) {
	countryID := h.defaultCountryID
	if raw := c.Query("countryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(c, "Invalid countryId")
			return
		}
		countryID = id
	}

	lists, err := h.service.LocationLists(c.Request.Context(), countryID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Locations retrieved successfully", lists)
}
