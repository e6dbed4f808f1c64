package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// NotFoundError giữ id để message rõ ràng; errors.Is(err, ErrFeedbackNotFound) vẫn đúng
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("feedback %d not found", e.ID) }

func (e *NotFoundError) Unwrap() error { return ErrFeedbackNotFound }

func NewFeedbackNotFound(id int64) error { return &NotFoundError{ID: id} }

// MapErrorToHTTP trả về status, code, message
func MapErrorToHTTP(err error) (int, string, string) {
	if errors.Is(err, ErrFeedbackNotFound) {
		return http.StatusNotFound, "FEEDBACK_NOT_FOUND", err.Error()
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
}
