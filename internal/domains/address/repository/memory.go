package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domains/address/model"
)

// MemoryRepository giữ address trong process (tests). Mọi thao tác
// chạy dưới một mutex nên "set default" là atomic như bản Postgres.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*model.Address
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*model.Address), now: time.Now}
}

func (r *MemoryRepository) clearDefault(userID, keepID uuid.UUID) {
	for _, a := range r.items {
		if a.UserID == userID && a.ID != keepID && a.IsDefault && !a.IsDeleted {
			a.IsDefault = false
			a.UpdatedAt = r.now()
		}
	}
}

func (r *MemoryRepository) Create(_ context.Context, addr *model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr.ID = uuid.New()
	if addr.IsDefault {
		r.clearDefault(addr.UserID, addr.ID)
	}
	addr.CreatedAt = r.now()
	addr.UpdatedAt = addr.CreatedAt
	stored := *addr
	r.items[addr.ID] = &stored
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, addr *model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[addr.ID]
	if !ok || cur.IsDeleted || cur.UserID != addr.UserID {
		return model.NewAddressNotFound()
	}
	if addr.IsDefault {
		r.clearDefault(addr.UserID, addr.ID)
	}
	addr.CreatedAt = cur.CreatedAt
	addr.UpdatedAt = r.now()
	stored := *addr
	r.items[addr.ID] = &stored
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok || a.IsDeleted {
		return nil, model.NewAddressNotFound()
	}
	out := *a
	return &out, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Address{}
	for _, a := range r.items {
		if a.UserID == userID && !a.IsDeleted {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.IsDeleted {
		return model.NewAddressNotFound()
	}
	a.IsDeleted = true
	a.IsDefault = false
	a.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepository) IsProvinceReferenced(_ context.Context, provinceID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if !a.IsDeleted && a.StateOrProvinceID == provinceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) IsCountryReferenced(_ context.Context, countryID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if !a.IsDeleted && a.CountryID == countryID {
			return true, nil
		}
	}
	return false, nil
}
