package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxTextLength = 450

// FeedbackRequest - POST /feedbacks. Type là pointer để phân biệt "không gửi" với Product (0).
type FeedbackRequest struct {
	Contact *string       `json:"contact"`
	Content string        `json:"content"`
	Type    *FeedbackType `json:"type"`
}

func (r *FeedbackRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	if r.Contact != nil {
		c := strings.TrimSpace(*r.Contact)
		if c == "" {
			r.Contact = nil
		} else {
			r.Contact = &c
		}
	}
}

var errInvalidType = errors.New("must be a valid feedback type")

func (r FeedbackRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Contact, validation.NilOrNotEmpty, validation.RuneLength(1, maxTextLength)),
		validation.Field(&r.Content, validation.Required, validation.RuneLength(1, maxTextLength)),
		validation.Field(&r.Type, validation.NotNil, validation.By(func(v interface{}) error {
			t, _ := v.(*FeedbackType)
			if t != nil && !t.IsValid() {
				return errInvalidType
			}
			return nil
		})),
	)
}

// FeedbackQueryRequest - body của POST /feedbacks/grid
type FeedbackQueryRequest struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Search struct {
		Content string        `json:"content"`
		Type    *FeedbackType `json:"type"`
	} `json:"search"`
}

func (r *FeedbackQueryRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 200 {
		r.Limit = 200
	}
	r.Search.Content = strings.TrimSpace(r.Search.Content)
}

func (r FeedbackQueryRequest) Offset() int { return (r.Page - 1) * r.Limit }
