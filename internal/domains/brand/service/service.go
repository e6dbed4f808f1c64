package service

import (
	"context"
	"errors"

	"shop-backend/internal/domains/brand/model"
	"shop-backend/internal/domains/brand/repository"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/cache"
	"shop-backend/pkg/logger"
)

// ListCacheKey giữ danh sách brand đã publish (GET /brands)
const ListCacheKey = "brand:list"

type Service interface {
	Create(ctx context.Context, req model.BrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id int64, req model.BrandRequest) (*model.Brand, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Brand, error)
	Grid(ctx context.Context, req model.BrandQueryRequest) ([]model.Brand, int64, error)
	// ListPublished đọc từ cache, miss thì load từ DB và set lại
	ListPublished(ctx context.Context) ([]model.BrandItem, error)
	ClearCache(ctx context.Context) error
}

type brandService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewBrandService(repo repository.Repository, c cache.Cache) Service {
	return &brandService{repo: repo, cache: c}
}

func (s *brandService) Create(ctx context.Context, req model.BrandRequest) (*model.Brand, error) {
	b := &model.Brand{}
	if err := s.apply(ctx, b, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *brandService) Update(ctx context.Context, id int64, req model.BrandRequest) (*model.Brand, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, b, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *brandService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *brandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *brandService) Grid(ctx context.Context, req model.BrandQueryRequest) ([]model.Brand, int64, error) {
	req.Normalize()
	return s.repo.List(ctx, req)
}

func (s *brandService) ListPublished(ctx context.Context) ([]model.BrandItem, error) {
	var items []model.BrandItem
	found, err := s.cache.Get(ctx, ListCacheKey, &items)
	if err != nil {
		// cache lỗi thì đọc thẳng DB
		logger.Warn("Brand list cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return items, nil
	}

	brands, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	items = make([]model.BrandItem, 0, len(brands))
	for i := range brands {
		items = append(items, brands[i].ToItem())
	}

	if err := s.cache.Set(ctx, ListCacheKey, items, cache.NoExpiration); err != nil {
		logger.Warn("Brand list cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return items, nil
}

func (s *brandService) ClearCache(ctx context.Context) error {
	return s.cache.Delete(ctx, ListCacheKey)
}

// apply validate request, sinh slug và kiểm tra trùng
func (s *brandService) apply(ctx context.Context, b *model.Brand, req model.BrandRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}
	if slug == "" {
		return model.NewInvalidSlug(req.Name)
	}
	taken, err := s.repo.SlugExists(ctx, slug, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return model.NewDuplicateSlug(slug)
	}

	b.Name = req.Name
	b.Slug = slug
	b.Description = req.Description
	b.IsPublished = req.IsPublished
	return nil
}

func (s *brandService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, ListCacheKey); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Failed to invalidate brand list cache", err)
	}
}
