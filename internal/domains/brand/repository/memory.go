package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shop-backend/internal/domains/brand/model"
)

// MemoryRepository - brands trong process, dùng cho tests và seed dry-run
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*model.Brand
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]*model.Brand)}
}

func (r *MemoryRepository) slugTaken(slug string, excludeID int64) bool {
	for _, b := range r.items {
		if !b.IsDeleted && b.ID != excludeID && b.Slug == slug {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Create(_ context.Context, b *model.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(b.Slug, 0) {
		return model.NewDuplicateSlug(b.Slug)
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	r.items[b.ID] = &stored
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, b *model.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[b.ID]
	if !ok || cur.IsDeleted {
		return model.NewBrandNotFound(b.ID)
	}
	if r.slugTaken(b.Slug, b.ID) {
		return model.NewDuplicateSlug(b.Slug)
	}
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = time.Now()
	stored := *b
	r.items[b.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*model.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok || b.IsDeleted {
		return nil, model.NewBrandNotFound(id)
	}
	out := *b
	return &out, nil
}

func (r *MemoryRepository) filter(keep func(b *model.Brand) bool) []model.Brand {
	out := []model.Brand{}
	for _, b := range r.items {
		if !b.IsDeleted && keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MemoryRepository) List(_ context.Context, req model.BrandQueryRequest) ([]model.Brand, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(req.Search.Name)
	all := r.filter(func(b *model.Brand) bool {
		if name != "" && !strings.Contains(strings.ToLower(b.Name), name) {
			return false
		}
		return req.Search.IsPublished == nil || b.IsPublished == *req.Search.IsPublished
	})

	total := int64(len(all))
	start := req.Offset()
	if start >= len(all) {
		return []model.Brand{}, total, nil
	}
	end := start + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *MemoryRepository) ListPublished(_ context.Context) ([]model.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(b *model.Brand) bool { return b.IsPublished }), nil
}

func (r *MemoryRepository) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slugTaken(slug, excludeID), nil
}

func (r *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[id]
	if !ok || b.IsDeleted {
		return model.NewBrandNotFound(id)
	}
	b.IsDeleted = true
	b.UpdatedAt = time.Now()
	return nil
}
