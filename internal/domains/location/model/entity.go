package model

import "time"

// Country là gốc của một cây hành chính.
type Country struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	NumericIsoCode     *int      `json:"numeric_iso_code,omitempty"`
	TwoLetterIsoCode   *string   `json:"two_letter_iso_code,omitempty"`
	ThreeLetterIsoCode *string   `json:"three_letter_iso_code,omitempty"`
	DisplayOrder       int       `json:"display_order"`
	IsPublished        bool      `json:"is_published"`
	IsBillingEnabled   bool      `json:"is_billing_enabled"`
	IsShippingEnabled  bool      `json:"is_shipping_enabled"`
	IsCityEnabled      bool      `json:"is_city_enabled"`
	IsDistrictEnabled  bool      `json:"is_district_enabled"`
	IsDeleted          bool      `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Province là một node trong cây (province, city, district hoặc street).
// Children không được lưu; chúng được suy ra từ ParentID.
type Province struct {
	ID           int64     `json:"id"`
	CountryID    int64     `json:"country_id"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	Name         string    `json:"name"`
	Code         *string   `json:"code,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsPublished  bool      `json:"is_published"`
	Level        Level     `json:"level"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Province) IsRoot() bool { return p.ParentID == nil }

// HasParent reports whether p's parent is id.
func (p *Province) HasParent(id int64) bool {
	return p.ParentID != nil && *p.ParentID == id
}

// SameParent so sánh hai parent id, nil == nil.
func SameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
