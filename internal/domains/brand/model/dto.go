package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// BrandRequest dùng cho create và update. Slug rỗng thì sinh từ Name.
type BrandRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	IsPublished bool    `json:"is_published"`
}

func (r *BrandRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

func (r BrandRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 450)),
		validation.Field(&r.Slug, validation.Length(1, 450), validation.Match(slugRegex)),
	)
}

// BrandQueryRequest - body của POST /brands/grid
type BrandQueryRequest struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Search struct {
		Name        string `json:"name"`
		IsPublished *bool  `json:"is_published"`
	} `json:"search"`
}

func (r *BrandQueryRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultPageSize
	}
	if r.Limit > MaxPageSize {
		r.Limit = MaxPageSize
	}
	r.Search.Name = strings.TrimSpace(r.Search.Name)
}

func (r BrandQueryRequest) Offset() int { return (r.Page - 1) * r.Limit }
