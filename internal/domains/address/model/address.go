package model

import (
	"time"

	"github.com/google/uuid"
)

// Address là địa chỉ giao hàng của user.
// StateOrProvinceID trỏ vào node sâu nhất user chọn (district, nếu không có thì city).
type Address struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	CountryID         int64     `json:"country_id" db:"country_id"`
	StateOrProvinceID int64     `json:"state_or_province_id" db:"state_or_province_id"`

	ContactName  string  `json:"contact_name" db:"contact_name"`
	Phone        string  `json:"phone" db:"phone"`
	AddressLine1 string  `json:"address_line1" db:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty" db:"address_line2"`
	ZipCode      *string `json:"zip_code,omitempty" db:"zip_code"`

	IsDefault bool      `json:"is_default" db:"is_default"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AddressResponse kèm tên province/city/district đã resolve từ cây location.
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	ContactName  string    `json:"contact_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 *string   `json:"address_line2,omitempty"`
	ZipCode      *string   `json:"zip_code,omitempty"`
	CountryID    int64     `json:"country_id"`

	StateOrProvinceID int64  `json:"state_or_province_id"`
	ProvinceID        *int64 `json:"province_id,omitempty"`
	ProvinceName      string `json:"province_name,omitempty"`
	CityID            *int64 `json:"city_id,omitempty"`
	CityName          string `json:"city_name,omitempty"`
	DistrictID        *int64 `json:"district_id,omitempty"`
	DistrictName      string `json:"district_name,omitempty"`

	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) ToResponse() AddressResponse {
	return AddressResponse{
		ID:                a.ID,
		ContactName:       a.ContactName,
		Phone:             a.Phone,
		AddressLine1:      a.AddressLine1,
		AddressLine2:      a.AddressLine2,
		ZipCode:           a.ZipCode,
		CountryID:         a.CountryID,
		StateOrProvinceID: a.StateOrProvinceID,
		IsDefault:         a.IsDefault,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
