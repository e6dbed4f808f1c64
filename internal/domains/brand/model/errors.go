package model

import (
	"errors"
	"fmt"
	"net/http"
)

// BrandError định nghĩa base error cho brand domain
type BrandError struct {
	Code    string // Error code duy nhất (VD: "BRAND_NOT_FOUND")
	Message string
	Err     error
}

func (e *BrandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *BrandError) Unwrap() error {
	return e.Err
}

const (
	CodeBrandNotFound = "BRAND_NOT_FOUND"
	CodeDuplicateSlug = "BRAND_SLUG_ALREADY_EXISTS"
	CodeInvalidSlug   = "INVALID_SLUG"
)

func NewBrandNotFound(id int64) *BrandError {
	return &BrandError{Code: CodeBrandNotFound, Message: fmt.Sprintf("Brand %d not found", id)}
}

func NewDuplicateSlug(slug string) *BrandError {
	return &BrandError{Code: CodeDuplicateSlug, Message: fmt.Sprintf("Brand slug %q already exists", slug)}
}

// NewInvalidSlug - tên không sinh được slug (vd: chỉ có ký tự đặc biệt)
func NewInvalidSlug(name string) *BrandError {
	return &BrandError{Code: CodeInvalidSlug, Message: fmt.Sprintf("Cannot build a slug from %q", name)}
}

func GetErrorCode(err error) string {
	var brandErr *BrandError
	if errors.As(err, &brandErr) {
		return brandErr.Code
	}
	return "INTERNAL_ERROR"
}

// MapErrorToHTTP trả về status, code, message
func MapErrorToHTTP(err error) (int, string, string) {
	var brandErr *BrandError
	if !errors.As(err, &brandErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
	switch brandErr.Code {
	case CodeBrandNotFound:
		return http.StatusNotFound, brandErr.Code, brandErr.Message
	case CodeDuplicateSlug:
		return http.StatusConflict, brandErr.Code, brandErr.Message
	case CodeInvalidSlug:
		return http.StatusBadRequest, brandErr.Code, brandErr.Message
	default:
		return http.StatusInternalServerError, brandErr.Code, brandErr.Message
	}
}
