package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors; LocationError.Unwrap trả về một trong số này nên errors.Is dùng được.
var (
	ErrNotFound             = errors.New("location not found")
	ErrParentNotFound       = errors.New("parent location not found")
	ErrSelfParent           = errors.New("cannot set itself as parent")
	ErrDuplicateSibling     = errors.New("duplicate name under the same parent")
	ErrHasChildren          = errors.New("level cannot change while children exist")
	ErrLevelExhausted       = errors.New("street level cannot have children")
	ErrInUse                = errors.New("location is in use")
	ErrDuplicateCountryCode = errors.New("country ISO code already exists")
	ErrInvalidLevel         = errors.New("invalid level")
)

const (
	CodeNotFound             = "LOCATION_NOT_FOUND"
	CodeCountryNotFound      = "COUNTRY_NOT_FOUND"
	CodeParentNotFound       = "PARENT_NOT_FOUND"
	CodeSelfParent           = "SELF_PARENT"
	CodeDuplicateSibling     = "DUPLICATE_SIBLING"
	CodeHasChildren          = "HAS_CHILDREN"
	CodeLevelExhausted       = "LEVEL_EXHAUSTED"
	CodeInUse                = "LOCATION_IN_USE"
	CodeDuplicateCountryCode = "DUPLICATE_COUNTRY_CODE"
	CodeInvalidLevel         = "INVALID_LEVEL"
)

// LocationError định nghĩa base error cho location domain
type LocationError struct {
	Code    string
	Message string
	Err     error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewProvinceNotFound(id int64) *LocationError {
	return &LocationError{Code: CodeNotFound, Message: fmt.Sprintf("Province %d not found", id), Err: ErrNotFound}
}

func NewCountryNotFound(id int64) *LocationError {
	return &LocationError{Code: CodeCountryNotFound, Message: fmt.Sprintf("Country %d not found", id), Err: ErrNotFound}
}

func NewParentNotFound(id int64) *LocationError {
	return &LocationError{Code: CodeParentNotFound, Message: fmt.Sprintf("Parent %d does not exist", id), Err: ErrParentNotFound}
}

func NewSelfParent(id int64) *LocationError {
	return &LocationError{Code: CodeSelfParent, Message: fmt.Sprintf("Province %d cannot set itself as parent", id), Err: ErrSelfParent}
}

func NewDuplicateSibling(name string) *LocationError {
	return &LocationError{Code: CodeDuplicateSibling, Message: fmt.Sprintf("%q already exists under this parent", name), Err: ErrDuplicateSibling}
}

func NewHasChildren(id int64) *LocationError {
	return &LocationError{Code: CodeHasChildren, Message: fmt.Sprintf("Province %d has children, its level cannot change", id), Err: ErrHasChildren}
}

func NewLevelExhausted(parentID int64) *LocationError {
	return &LocationError{Code: CodeLevelExhausted, Message: fmt.Sprintf("Parent %d is a street and cannot have children", parentID), Err: ErrLevelExhausted}
}

// NewInUse: reason mô tả ai đang tham chiếu ("children", "addresses", "provinces").
func NewInUse(kind string, id int64, reason string) *LocationError {
	return &LocationError{Code: CodeInUse, Message: fmt.Sprintf("%s %d is referenced by %s", kind, id, reason), Err: ErrInUse}
}

func NewDuplicateCountryCode(field, value string) *LocationError {
	return &LocationError{Code: CodeDuplicateCountryCode, Message: fmt.Sprintf("%s %q already exists", field, value), Err: ErrDuplicateCountryCode}
}

func NewInvalidLevel(err error) *LocationError {
	return &LocationError{Code: CodeInvalidLevel, Message: "Invalid level", Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsDomainError(err error) bool {
	var locErr *LocationError
	return errors.As(err, &locErr)
}

func GetErrorCode(err error) string {
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return locErr.Code
	}
	return "INTERNAL_ERROR"
}

// MapErrorToHTTP trả về status, code, message cho handler.
// Lỗi không thuộc domain được che bằng message chung.
func MapErrorToHTTP(err error) (int, string, string) {
	var locErr *LocationError
	if !errors.As(err, &locErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, locErr.Code, locErr.Message
	case errors.Is(err, ErrInUse), errors.Is(err, ErrDuplicateSibling),
		errors.Is(err, ErrDuplicateCountryCode), errors.Is(err, ErrHasChildren):
		return http.StatusConflict, locErr.Code, locErr.Message
	case errors.Is(err, ErrParentNotFound), errors.Is(err, ErrSelfParent),
		errors.Is(err, ErrLevelExhausted), errors.Is(err, ErrInvalidLevel):
		return http.StatusBadRequest, locErr.Code, locErr.Message
	default:
		return http.StatusInternalServerError, locErr.Code, locErr.Message
	}
}
