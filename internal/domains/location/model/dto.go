package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
	maxNameLength   = 450
)

// Pagination dùng chung cho các grid endpoint
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize: page >= 1, 1 <= limit <= MaxPageSize
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// ========================================
// COUNTRY
// ========================================

type CountryCreateRequest struct {
	Name               string  `json:"name"`
	NumericIsoCode     *int    `json:"numeric_iso_code"`
	TwoLetterIsoCode   *string `json:"two_letter_iso_code"`
	ThreeLetterIsoCode *string `json:"three_letter_iso_code"`
	DisplayOrder       int     `json:"display_order"`
	IsPublished        bool    `json:"is_published"`
	IsBillingEnabled   bool    `json:"is_billing_enabled"`
	IsShippingEnabled  bool    `json:"is_shipping_enabled"`
	IsCityEnabled      bool    `json:"is_city_enabled"`
	IsDistrictEnabled  bool    `json:"is_district_enabled"`
}

func (r *CountryCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.TwoLetterIsoCode = upperOrNil(r.TwoLetterIsoCode)
	r.ThreeLetterIsoCode = upperOrNil(r.ThreeLetterIsoCode)
}

func (r CountryCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.NumericIsoCode, validation.NilOrNotEmpty, validation.Min(1), validation.Max(999)),
		validation.Field(&r.TwoLetterIsoCode, validation.NilOrNotEmpty, validation.Length(2, 2), is.UpperCase, is.Alpha),
		validation.Field(&r.ThreeLetterIsoCode, validation.NilOrNotEmpty, validation.Length(3, 3), is.UpperCase, is.Alpha),
	)
}

// ApplyTo copy request fields vào entity (create và update dùng chung).
func (r *CountryCreateRequest) ApplyTo(c *Country) {
	c.Name = r.Name
	c.NumericIsoCode = r.NumericIsoCode
	c.TwoLetterIsoCode = r.TwoLetterIsoCode
	c.ThreeLetterIsoCode = r.ThreeLetterIsoCode
	c.DisplayOrder = r.DisplayOrder
	c.IsPublished = r.IsPublished
	c.IsBillingEnabled = r.IsBillingEnabled
	c.IsShippingEnabled = r.IsShippingEnabled
	c.IsCityEnabled = r.IsCityEnabled
	c.IsDistrictEnabled = r.IsDistrictEnabled
}

type CountryQueryRequest struct {
	Pagination
	Search struct {
		Name string `json:"name"`
	} `json:"search"`
}

// CountryResponse kèm số province (chưa xóa) của country.
type CountryResponse struct {
	Country
	StateOrProvinceCount int `json:"state_or_province_count"`
}

// ========================================
// PROVINCE
// ========================================

// ProvinceCreateRequest dùng cho cả add và edit. Level không nhận từ client.
type ProvinceCreateRequest struct {
	ParentID     *int64  `json:"parent_id"`
	Name         string  `json:"name"`
	Code         *string `json:"code"`
	DisplayOrder int     `json:"display_order"`
	IsPublished  bool    `json:"is_published"`
}

func (r *ProvinceCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Code != nil {
		code := strings.TrimSpace(*r.Code)
		if code == "" {
			r.Code = nil
		} else {
			r.Code = &code
		}
	}
}

func (r ProvinceCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Code, validation.NilOrNotEmpty, validation.Length(1, maxNameLength)),
		validation.Field(&r.ParentID, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}

// ProvinceFilter là điều kiện search cho grid.
type ProvinceFilter struct {
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	ParentID *int64  `json:"parent_id"`
	Levels   []Level `json:"level"`
}

type ProvinceQueryRequest struct {
	Pagination
	Search ProvinceFilter `json:"search"`
}

func (r ProvinceQueryRequest) Validate() error {
	for _, l := range r.Search.Levels {
		if !l.IsValid() {
			return NewInvalidLevel(ErrInvalidLevel)
		}
	}
	return nil
}

// ProvinceResponse dùng cho grid và get: node kèm tên parent.
type ProvinceResponse struct {
	Province
	LevelName  string  `json:"level_name"`
	ParentName *string `json:"parent_name,omitempty"`
}

// ProvinceItem là bản rút gọn dùng trong danh sách dropdown.
type ProvinceItem struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Level    Level  `json:"level"`
}

// LocationLists trả về cho GET /user-addresses/provinces
type LocationLists struct {
	Provinces []ProvinceItem `json:"provinces"`
	Cities    []ProvinceItem `json:"cities"`
	Districts []ProvinceItem `json:"districts"`
}

func upperOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}
