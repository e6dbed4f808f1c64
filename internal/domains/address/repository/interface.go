package repository

import (
	"context"

	"github.com/google/uuid"

	"shop-backend/internal/domains/address/model"
)

// Repository - data access cho user_addresses.
// Create/Update với IsDefault = true bỏ cờ default của các address khác
// của cùng user trong cùng transaction.
type Repository interface {
	Create(ctx context.Context, addr *model.Address) error
	Update(ctx context.Context, addr *model.Address) error
	// GetByID trả về ADDRESS_NOT_FOUND khi không có hoặc đã xóa
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	// SoftDelete đánh dấu xóa và bỏ cờ default
	SoftDelete(ctx context.Context, id uuid.UUID) error

	IsProvinceReferenced(ctx context.Context, provinceID int64) (bool, error)
	IsCountryReferenced(ctx context.Context, countryID int64) (bool, error)
}
