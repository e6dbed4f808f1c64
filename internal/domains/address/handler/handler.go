package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/address/model"
	"shop-backend/internal/domains/address/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

type AddressHandler struct {
	service service.Service
}

func NewAddressHandler(service service.Service) *AddressHandler {
	return &AddressHandler{
		service: service,
	}
}

// List handles GET /user-addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := getUserContext(c)
	if !ok {
		return
	}

	results, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Addresses retrieved successfully", results)
}

// Get handles GET /user-addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	userID, ok := getUserContext(c)
	if !ok {
		return
	}
	addressID, ok := getAddressID(c)
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID, addressID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Address retrieved successfully", result)
}

// Create handles POST /user-addresses
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := getUserContext(c)
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Address created successfully", result)
}

// Update handles PUT /user-addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := getUserContext(c)
	if !ok {
		return
	}
	addressID, ok := getAddressID(c)
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Address updated successfully", result)
}

// Delete handles DELETE /user-addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := getUserContext(c)
	if !ok {
		return
	}
	addressID, ok := getAddressID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, addressID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Address deleted successfully", nil)
}

func handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationError(c, err)
		return
	}

	status, code, message := model.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("address request failed")
	}
	response.ErrorResponse(c, status, code, message)
}

// Helper: user id do AuthMiddleware set
func getUserContext(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return userID, true
}

// Helper: Get address ID from URL param
func getAddressID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid address id")
		return uuid.Nil, false
	}
	return id, true
}
