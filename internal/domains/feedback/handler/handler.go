package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/feedback/model"
	"shop-backend/internal/domains/feedback/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

type FeedbackHandler struct {
	service service.Service
}

func NewFeedbackHandler(service service.Service) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /feedbacks
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		userID = uuid.Nil
	}
	f, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Feedback submitted successfully", f)
}

// Grid handles POST /feedbacks/grid
func (h *FeedbackHandler) Grid(c *gin.Context) {
	var req model.FeedbackQueryRequest
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
	response.SuccessWithMeta(c, http.StatusOK, "Feedbacks retrieved successfully", items,
		response.NewMeta(req.Page, req.Limit, total))
}

// Delete handles DELETE /feedbacks/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid feedback id")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Feedback deleted successfully", nil)
}

func handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationError(c, err)
		return
	}
	status, code, message := model.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("feedback request failed")
	}
	response.ErrorResponse(c, status, code, message)
}
