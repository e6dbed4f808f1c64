package repository

import (
	"context"

	"shop-backend/internal/domains/location/model"
)

// CountryRepository - data access cho bảng countries
type CountryRepository interface {
	Create(ctx context.Context, c *model.Country) (int64, error)
	Update(ctx context.Context, c *model.Country) error
	// GetByID trả về ErrNotFound khi không có hoặc đã bị soft delete
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	List(ctx context.Context, req model.CountryQueryRequest) ([]model.CountryResponse, int64, error)
	ListAll(ctx context.Context) ([]model.Country, error)
	SoftDelete(ctx context.Context, id int64) error
	// IsoCodeExists kiểm tra mã ISO trong các country chưa xóa, bỏ qua excludeID (0 = không bỏ)
	IsoCodeExists(ctx context.Context, field string, value any, excludeID int64) (bool, error)
	CountProvinces(ctx context.Context, countryID int64) (int64, error)
}

// ProvinceRepository - Hierarchy Store cho bảng state_or_provinces.
// Mọi query đều lọc is_deleted = false.
type ProvinceRepository interface {
	Create(ctx context.Context, p *model.Province) (int64, error)
	Update(ctx context.Context, p *model.Province) error
	GetByID(ctx context.Context, id int64) (*model.Province, error)
	// GetDetail kèm tên parent
	GetDetail(ctx context.Context, id int64) (*model.ProvinceResponse, error)
	// ListByCountry sắp theo display_order, name; dùng để build tree snapshot
	ListByCountry(ctx context.Context, countryID int64) ([]model.Province, error)
	List(ctx context.Context, countryID int64, req model.ProvinceQueryRequest) ([]model.ProvinceResponse, int64, error)
	// SiblingExists: có node khác (id != excludeID) cùng country, parent, name hay không
	SiblingExists(ctx context.Context, countryID int64, parentID *int64, name string, excludeID int64) (bool, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ISO code columns dùng cho IsoCodeExists
const (
	FieldNumericIsoCode     = "numeric_iso_code"
	FieldTwoLetterIsoCode   = "two_letter_iso_code"
	FieldThreeLetterIsoCode = "three_letter_iso_code"
)

func validIsoField(field string) bool {
	switch field {
	case FieldNumericIsoCode, FieldTwoLetterIsoCode, FieldThreeLetterIsoCode:
		return true
	}
	return false
}
