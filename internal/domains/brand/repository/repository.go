package repository

import (
	"context"

	"shop-backend/internal/domains/brand/model"
)

// Repository - data access cho bảng brands, luôn lọc is_deleted = false
type Repository interface {
	Create(ctx context.Context, b *model.Brand) error
	Update(ctx context.Context, b *model.Brand) error
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	List(ctx context.Context, req model.BrandQueryRequest) ([]model.Brand, int64, error)
	// ListPublished sắp theo name
	ListPublished(ctx context.Context) ([]model.Brand, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
}
