package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shop-backend/internal/domains/location/model"
)

// MemoryStore giữ countries và provinces trong process.
// Dùng cho tests và `seed locations --dry-run`; hành vi bám theo bản Postgres
// (tombstone, unique sibling, unique ISO code, thứ tự display_order, name).
type MemoryStore struct {
	mu            sync.RWMutex
	countries     map[int64]*model.Country
	provinces     map[int64]*model.Province
	nextCountryID int64
	nextID        int64
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		countries: make(map[int64]*model.Country),
		provinces: make(map[int64]*model.Province),
		now:       time.Now,
	}
}

// Countries trả về CountryRepository dùng chung store
func (s *MemoryStore) Countries() CountryRepository { return &memoryCountryRepository{s} }

// Provinces trả về ProvinceRepository dùng chung store
func (s *MemoryStore) Provinces() ProvinceRepository { return &memoryProvinceRepository{s} }

// ========================================
// COUNTRY
// ========================================

type memoryCountryRepository struct{ s *MemoryStore }

func (r *memoryCountryRepository) isoConflict(c *model.Country) error {
	for _, other := range r.s.countries {
		if other.IsDeleted || other.ID == c.ID {
			continue
		}
		switch {
		case c.NumericIsoCode != nil && other.NumericIsoCode != nil && *c.NumericIsoCode == *other.NumericIsoCode:
			return model.NewDuplicateCountryCode(FieldNumericIsoCode, fmt.Sprint(*c.NumericIsoCode))
		case c.TwoLetterIsoCode != nil && other.TwoLetterIsoCode != nil && *c.TwoLetterIsoCode == *other.TwoLetterIsoCode:
			return model.NewDuplicateCountryCode(FieldTwoLetterIsoCode, *c.TwoLetterIsoCode)
		case c.ThreeLetterIsoCode != nil && other.ThreeLetterIsoCode != nil && *c.ThreeLetterIsoCode == *other.ThreeLetterIsoCode:
			return model.NewDuplicateCountryCode(FieldThreeLetterIsoCode, *c.ThreeLetterIsoCode)
		}
	}
	return nil
}

func (r *memoryCountryRepository) Create(_ context.Context, c *model.Country) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = 0
	if err := r.isoConflict(c); err != nil {
		return 0, err
	}
	r.s.nextCountryID++
	c.ID = r.s.nextCountryID
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.s.countries[c.ID] = &stored
	return c.ID, nil
}

func (r *memoryCountryRepository) Update(_ context.Context, c *model.Country) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.countries[c.ID]
	if !ok || cur.IsDeleted {
		return model.NewCountryNotFound(c.ID)
	}
	if err := r.isoConflict(c); err != nil {
		return err
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	stored := *c
	r.s.countries[c.ID] = &stored
	return nil
}

func (r *memoryCountryRepository) GetByID(_ context.Context, id int64) (*model.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.countries[id]
	if !ok || c.IsDeleted {
		return nil, model.NewCountryNotFound(id)
	}
	out := *c
	return &out, nil
}

func (r *memoryCountryRepository) sorted() []model.Country {
	out := make([]model.Country, 0, len(r.s.countries))
	for _, c := range r.s.countries {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryCountryRepository) List(_ context.Context, req model.CountryQueryRequest) ([]model.CountryResponse, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []model.CountryResponse
	for _, c := range r.sorted() {
		if req.Search.Name != "" && !containsFold(c.Name, req.Search.Name) {
			continue
		}
		matched = append(matched, model.CountryResponse{Country: c, StateOrProvinceCount: r.s.countProvinces(c.ID)})
	}
	return page(matched, req.Pagination), int64(len(matched)), nil
}

func (r *memoryCountryRepository) ListAll(_ context.Context) ([]model.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(), nil
}

func (r *memoryCountryRepository) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.countries[id]
	if !ok || c.IsDeleted {
		return model.NewCountryNotFound(id)
	}
	c.IsDeleted = true
	c.UpdatedAt = r.s.now()
	return nil
}

func (r *memoryCountryRepository) IsoCodeExists(_ context.Context, field string, value any, excludeID int64) (bool, error) {
	if !validIsoField(field) {
		return false, fmt.Errorf("unknown iso field %q", field)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := fmt.Sprint(value)
	for _, c := range r.s.countries {
		if c.IsDeleted || c.ID == excludeID {
			continue
		}
		var got *string
		switch field {
		case FieldNumericIsoCode:
			if c.NumericIsoCode != nil {
				v := fmt.Sprint(*c.NumericIsoCode)
				got = &v
			}
		case FieldTwoLetterIsoCode:
			got = c.TwoLetterIsoCode
		case FieldThreeLetterIsoCode:
			got = c.ThreeLetterIsoCode
		}
		if got != nil && *got == want {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryCountryRepository) CountProvinces(_ context.Context, countryID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(r.s.countProvinces(countryID)), nil
}

func (s *MemoryStore) countProvinces(countryID int64) int {
	n := 0
	for _, p := range s.provinces {
		if p.CountryID == countryID && !p.IsDeleted {
			n++
		}
	}
	return n
}

// ========================================
// PROVINCE
// ========================================

type memoryProvinceRepository struct{ s *MemoryStore }

func (r *memoryProvinceRepository) siblingExists(countryID int64, parentID *int64, name string, excludeID int64) bool {
	for _, p := range r.s.provinces {
		if !p.IsDeleted && p.ID != excludeID && p.CountryID == countryID &&
			model.SameParent(p.ParentID, parentID) && p.Name == name {
			return true
		}
	}
	return false
}

func (r *memoryProvinceRepository) Create(_ context.Context, p *model.Province) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.siblingExists(p.CountryID, p.ParentID, p.Name, 0) {
		return 0, model.NewDuplicateSibling(p.Name)
	}
	r.s.nextID++
	p.ID = r.s.nextID
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	r.s.provinces[p.ID] = &stored
	return p.ID, nil
}

func (r *memoryProvinceRepository) Update(_ context.Context, p *model.Province) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.provinces[p.ID]
	if !ok || cur.IsDeleted {
		return model.NewProvinceNotFound(p.ID)
	}
	p.CountryID = cur.CountryID
	if r.siblingExists(p.CountryID, p.ParentID, p.Name, p.ID) {
		return model.NewDuplicateSibling(p.Name)
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	stored := *p
	r.s.provinces[p.ID] = &stored
	return nil
}

func (r *memoryProvinceRepository) get(id int64) (*model.Province, bool) {
	p, ok := r.s.provinces[id]
	if !ok || p.IsDeleted {
		return nil, false
	}
	return p, true
}

func (r *memoryProvinceRepository) GetByID(_ context.Context, id int64) (*model.Province, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.get(id)
	if !ok {
		return nil, model.NewProvinceNotFound(id)
	}
	out := *p
	return &out, nil
}

func (r *memoryProvinceRepository) detail(p model.Province) model.ProvinceResponse {
	res := model.ProvinceResponse{Province: p, LevelName: p.Level.String()}
	if p.ParentID != nil {
		if parent, ok := r.s.provinces[*p.ParentID]; ok {
			name := parent.Name
			res.ParentName = &name
		}
	}
	return res
}

func (r *memoryProvinceRepository) GetDetail(_ context.Context, id int64) (*model.ProvinceResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.get(id)
	if !ok {
		return nil, model.NewProvinceNotFound(id)
	}
	res := r.detail(*p)
	return &res, nil
}

func (r *memoryProvinceRepository) byCountry(countryID int64) []model.Province {
	out := []model.Province{}
	for _, p := range r.s.provinces {
		if p.CountryID == countryID && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryProvinceRepository) ListByCountry(_ context.Context, countryID int64) ([]model.Province, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.byCountry(countryID), nil
}

func (r *memoryProvinceRepository) List(_ context.Context, countryID int64, req model.ProvinceQueryRequest) ([]model.ProvinceResponse, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f := req.Search
	var matched []model.ProvinceResponse
	for _, p := range r.byCountry(countryID) {
		if f.Name != "" && !containsFold(p.Name, f.Name) {
			continue
		}
		if f.Code != "" && (p.Code == nil || !containsFold(*p.Code, f.Code)) {
			continue
		}
		if f.ParentID != nil && !p.HasParent(*f.ParentID) {
			continue
		}
		if len(f.Levels) > 0 && !containsLevel(f.Levels, p.Level) {
			continue
		}
		matched = append(matched, r.detail(p))
	}
	return page(matched, req.Pagination), int64(len(matched)), nil
}

func (r *memoryProvinceRepository) SiblingExists(_ context.Context, countryID int64, parentID *int64, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.siblingExists(countryID, parentID, name, excludeID), nil
}

func (r *memoryProvinceRepository) HasChildren(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.provinces {
		if !p.IsDeleted && p.HasParent(id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryProvinceRepository) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.get(id)
	if !ok {
		return model.NewProvinceNotFound(id)
	}
	p.IsDeleted = true
	p.UpdatedAt = r.s.now()
	return nil
}

// ========================================
// HELPERS
// ========================================

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func containsLevel(levels []model.Level, l model.Level) bool {
	for _, v := range levels {
		if v == l {
			return true
		}
	}
	return false
}

func page[T any](items []T, p model.Pagination) []T {
	p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
