package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// phoneRegex: số quốc tế hoặc nội địa, cho phép dấu cách và gạch nối
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]{7,18}[0-9]$`)

// AddressRequest dùng cho cả create và update.
// CountryID = 0 thì service dùng DEFAULT_COUNTRY_ID.
type AddressRequest struct {
	CountryID         int64   `json:"country_id"`
	StateOrProvinceID int64   `json:"state_or_province_id"`
	CityID            int64   `json:"city_id"`
	DistrictID        *int64  `json:"district_id"`
	ContactName       string  `json:"contact_name"`
	Phone             string  `json:"phone"`
	AddressLine1      string  `json:"address_line1"`
	AddressLine2      *string `json:"address_line2"`
	ZipCode           *string `json:"zip_code"`
	IsDefault         bool    `json:"is_default"`
}

func (r *AddressRequest) Normalize() {
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.AddressLine1 = strings.TrimSpace(r.AddressLine1)
	r.AddressLine2 = trimOrNil(r.AddressLine2)
	r.ZipCode = trimOrNil(r.ZipCode)
}

func (r AddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StateOrProvinceID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.CityID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.DistrictID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&r.ContactName, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Phone, validation.Required, validation.Match(phoneRegex)),
		validation.Field(&r.AddressLine1, validation.Required, validation.Length(1, 450)),
		validation.Field(&r.AddressLine2, validation.NilOrNotEmpty, validation.Length(1, 450)),
		validation.Field(&r.ZipCode, validation.NilOrNotEmpty, validation.Length(1, 20)),
	)
}

// LocationID là node được lưu: district nếu có, không thì city.
func (r *AddressRequest) LocationID() int64 {
	if r.DistrictID != nil {
		return *r.DistrictID
	}
	return r.CityID
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
