package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/logger"
)

// handleError map lỗi service ra response envelope.
// Lỗi không thuộc domain được log và che bằng 500.
func handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationError(c, err)
		return
	}

	status, code, message := model.MapErrorToHTTP(err)
	if status == http.StatusInternalServerError {
		logger.ErrorWithFields("location request failed", err, map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": c.GetString(shared.ContextKeyRequestID),
		})
	}
	response.ErrorResponse(c, status, code, message)
}

// paramID đọc path param kiểu int64 > 0; lỗi thì đã trả 400.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindOptionalJSON cho phép body rỗng (grid không có điều kiện search).
func bindOptionalJSON(c *gin.Context, dest any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return false
	}
	return true
}
