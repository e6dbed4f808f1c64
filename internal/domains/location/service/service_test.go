package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
	infraCache "shop-backend/internal/infrastructure/cache"
	types "shop-backend/internal/shared"
	"shop-backend/internal/shared/metrics"
)

type fakeAddressRefs struct {
	provinces map[int64]bool
	countries map[int64]bool
}

func (f *fakeAddressRefs) IsProvinceReferenced(_ context.Context, id int64) (bool, error) {
	return f.provinces[id], nil
}

func (f *fakeAddressRefs) IsCountryReferenced(_ context.Context, id int64) (bool, error) {
	return f.countries[id], nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, f.err
}

type fixture struct {
	store     *repository.MemoryStore
	cache     *infraCache.MemoryCache
	refs      *fakeAddressRefs
	queue     *fakeEnqueuer
	trees     *TreeCache
	countries CountryService
	provinces ProvinceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	mc := infraCache.NewMemoryCache()
	refs := &fakeAddressRefs{provinces: map[int64]bool{}, countries: map[int64]bool{}}
	queue := &fakeEnqueuer{}
	trees := NewTreeCache(mc, store.Provinces(), queue)

	return &fixture{
		store:     store,
		cache:     mc,
		refs:      refs,
		queue:     queue,
		trees:     trees,
		countries: NewCountryService(store.Countries(), refs, trees),
		provinces: NewProvinceService(store.Countries(), store.Provinces(), refs, trees, 3),
	}
}

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

func (f *fixture) country(t *testing.T, name, iso2 string) *model.Country {
	t.Helper()
	c, err := f.countries.Create(context.Background(), model.CountryCreateRequest{
		Name:             name,
		TwoLetterIsoCode: strPtr(iso2),
		IsPublished:      true,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) node(t *testing.T, countryID int64, parentID *int64, name string) *model.Province {
	t.Helper()
	p, err := f.provinces.Create(context.Background(), countryID, model.ProvinceCreateRequest{
		ParentID: parentID,
		Name:     name,
	})
	require.NoError(t, err)
	return p
}

// ========================================
// HIERARCHY
// ========================================

func TestProvinceService_DowntownScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.country(t, "Country C", "CC")
	p := f.node(t, c.ID, nil, "P")
	assert.Equal(t, model.LevelDefault, p.Level)

	downtown := f.node(t, c.ID, idPtr(p.ID), "Downtown")
	assert.Equal(t, model.LevelCity, downtown.Level)

	_, err := f.provinces.Create(ctx, c.ID, model.ProvinceCreateRequest{ParentID: idPtr(p.ID), Name: "Downtown"})
	assert.ErrorIs(t, err, model.ErrDuplicateSibling)

	err = f.provinces.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, model.ErrInUse)

	require.NoError(t, f.provinces.Delete(ctx, downtown.ID))

	nodes, err := f.provinces.ListByCountry(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "P", nodes[0].Name)
}

func TestProvinceService_LevelFollowsParent(t *testing.T) {
	f := newFixture(t)
	c := f.country(t, "VN", "VN")

	province := f.node(t, c.ID, nil, "Ha Noi")
	city := f.node(t, c.ID, idPtr(province.ID), "Cau Giay")
	district := f.node(t, c.ID, idPtr(city.ID), "Dich Vong")
	street := f.node(t, c.ID, idPtr(district.ID), "Xuan Thuy")

	assert.Equal(t, model.LevelDefault, province.Level)
	assert.Equal(t, model.LevelCity, city.Level)
	assert.Equal(t, model.LevelDistrict, district.Level)
	assert.Equal(t, model.LevelStreet, street.Level)

	_, err := f.provinces.Create(context.Background(), c.ID, model.ProvinceCreateRequest{
		ParentID: idPtr(street.ID),
		Name:     "Too deep",
	})
	assert.ErrorIs(t, err, model.ErrLevelExhausted)

	// invariant: level == default iff parent == nil; level == next(parent.level)
	nodes, err := f.provinces.ListByCountry(context.Background(), c.ID)
	require.NoError(t, err)
	byID := map[int64]model.Province{}
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID == nil {
			assert.Equal(t, model.LevelDefault, n.Level)
			continue
		}
		want, err := byID[*n.ParentID].Level.Next()
		require.NoError(t, err)
		assert.Equal(t, want, n.Level, n.Name)
	}
}

func TestProvinceService_CreateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	other := f.country(t, "B", "BB")
	foreign := f.node(t, other.ID, nil, "Foreign")
	gone := f.node(t, c.ID, nil, "Gone")
	require.NoError(t, f.provinces.Delete(ctx, gone.ID))

	tests := []struct {
		name      string
		countryID int64
		req       model.ProvinceCreateRequest
		wantErr   error
	}{
		{"missing country", 999, model.ProvinceCreateRequest{Name: "X"}, model.ErrNotFound},
		{"missing parent", c.ID, model.ProvinceCreateRequest{ParentID: idPtr(999), Name: "X"}, model.ErrParentNotFound},
		{"parent in other country", c.ID, model.ProvinceCreateRequest{ParentID: idPtr(foreign.ID), Name: "X"}, model.ErrParentNotFound},
		{"soft-deleted parent", c.ID, model.ProvinceCreateRequest{ParentID: idPtr(gone.ID), Name: "X"}, model.ErrParentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.provinces.Create(ctx, tt.countryID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("blank name fails validation", func(t *testing.T) {
		_, err := f.provinces.Create(ctx, c.ID, model.ProvinceCreateRequest{Name: "   "})
		require.Error(t, err)
		assert.False(t, model.IsDomainError(err))
	})

	t.Run("same name under different parents is allowed", func(t *testing.T) {
		p1 := f.node(t, c.ID, nil, "P1")
		p2 := f.node(t, c.ID, nil, "P2")
		f.node(t, c.ID, idPtr(p1.ID), "Center")
		f.node(t, c.ID, idPtr(p2.ID), "Center")
	})
}

func TestProvinceService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")

	p1 := f.node(t, c.ID, nil, "P1")
	p2 := f.node(t, c.ID, nil, "P2")
	city := f.node(t, c.ID, idPtr(p1.ID), "City")
	f.node(t, c.ID, idPtr(city.ID), "District")
	f.node(t, c.ID, idPtr(p2.ID), "Taken")

	t.Run("self parent", func(t *testing.T) {
		_, err := f.provinces.Update(ctx, city.ID, model.ProvinceCreateRequest{ParentID: idPtr(city.ID), Name: "City"})
		assert.ErrorIs(t, err, model.ErrSelfParent)
	})

	t.Run("level change with children", func(t *testing.T) {
		_, err := f.provinces.Update(ctx, city.ID, model.ProvinceCreateRequest{Name: "City"})
		assert.ErrorIs(t, err, model.ErrHasChildren)
	})

	t.Run("duplicate sibling after move", func(t *testing.T) {
		_, err := f.provinces.Update(ctx, city.ID, model.ProvinceCreateRequest{ParentID: idPtr(p2.ID), Name: "Taken"})
		assert.ErrorIs(t, err, model.ErrDuplicateSibling)
	})

	t.Run("move keeping level is allowed with children", func(t *testing.T) {
		moved, err := f.provinces.Update(ctx, city.ID, model.ProvinceCreateRequest{ParentID: idPtr(p2.ID), Name: "City", Code: strPtr("C-1")})
		require.NoError(t, err)
		assert.Equal(t, model.LevelCity, moved.Level)
		assert.True(t, moved.HasParent(p2.ID))
		assert.Equal(t, "C-1", *moved.Code)
	})

	t.Run("leaf can change level", func(t *testing.T) {
		leaf := f.node(t, c.ID, idPtr(p1.ID), "Leaf")
		promoted, err := f.provinces.Update(ctx, leaf.ID, model.ProvinceCreateRequest{Name: "Leaf"})
		require.NoError(t, err)
		assert.Equal(t, model.LevelDefault, promoted.Level)
		assert.Nil(t, promoted.ParentID)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := f.provinces.Update(ctx, 999, model.ProvinceCreateRequest{Name: "X"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProvinceService_DeleteReferencedByAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "P")
	city := f.node(t, c.ID, idPtr(p.ID), "City")

	f.refs.provinces[city.ID] = true
	err := f.provinces.Delete(ctx, city.ID)
	assert.ErrorIs(t, err, model.ErrInUse)
	assert.Contains(t, err.Error(), "addresses")

	f.refs.provinces[city.ID] = false
	require.NoError(t, f.provinces.Delete(ctx, city.ID))

	err = f.provinces.Delete(ctx, city.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProvinceService_DeletedNameCanBeReused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "P")

	require.NoError(t, f.provinces.Delete(ctx, p.ID))
	again := f.node(t, c.ID, nil, "P")
	assert.NotEqual(t, p.ID, again.ID)

	_, err := f.provinces.Create(ctx, c.ID, model.ProvinceCreateRequest{ParentID: idPtr(p.ID), Name: "Child"})
	assert.ErrorIs(t, err, model.ErrParentNotFound)
}

// ========================================
// TREE CACHE
// ========================================

func TestTreeCache_InvalidateThenRebuild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "P")

	tree, err := f.provinces.Snapshot(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())

	found, err := f.cache.Exists(ctx, TreeCacheKey(c.ID))
	require.NoError(t, err)
	assert.True(t, found, "snapshot should be cached after first read")

	f.node(t, c.ID, idPtr(p.ID), "City")

	found, err = f.cache.Exists(ctx, TreeCacheKey(c.ID))
	require.NoError(t, err)
	assert.False(t, found, "write must evict the snapshot")

	tree, err = f.provinces.Snapshot(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
	assert.Len(t, tree.Children[p.ID], 1)
}

func rebuildHistogram(t *testing.T) *dto.Histogram {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.ProvinceTreeRebuildDurationSeconds.Write(&m))
	return m.GetHistogram()
}

func TestTreeCache_RebuildDurationInSeconds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	f.node(t, c.ID, nil, "P")

	before := rebuildHistogram(t)
	_, err := f.trees.GetTree(ctx, c.ID)
	require.NoError(t, err)
	after := rebuildHistogram(t)

	assert.Equal(t, before.GetSampleCount()+1, after.GetSampleCount())
	observed := after.GetSampleSum() - before.GetSampleSum()
	assert.Greater(t, observed, 0.0, "sub-millisecond rebuilds must not record zero")
	assert.Less(t, observed, 5.0)
}

func TestTreeCache_StaleSnapshotIsReplaced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	f.node(t, c.ID, nil, "P")

	stale := model.BuildTree(c.ID, nil)
	require.NoError(t, f.cache.Set(ctx, TreeCacheKey(c.ID), stale, 0))

	tree, err := f.trees.GetTree(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len(), "hit returns the cached snapshot")

	f.trees.Invalidate(ctx, c.ID)
	tree, err = f.trees.GetTree(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
}

func TestTreeCache_InvalidateEnqueuesWarmUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.trees.Invalidate(ctx, 42)
	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, types.TypeWarmProvinceTree, f.queue.tasks[0].Type())
	assert.JSONEq(t, `{"country_id":42}`, string(f.queue.tasks[0].Payload()))

	f.queue.err = errors.New("redis down")
	assert.NotPanics(t, func() { f.trees.Invalidate(ctx, 42) })

	noQueue := NewTreeCache(f.cache, f.store.Provinces(), nil)
	assert.NotPanics(t, func() { noQueue.Invalidate(ctx, 42) })
}

func TestTreeCache_Clear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.country(t, "A", "AA")
	b := f.country(t, "B", "BB")

	n, err := f.provinces.WarmAllTrees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, f.cache.Set(ctx, "brand:list", []string{"x"}, 0))

	require.NoError(t, f.trees.Clear(ctx))

	for _, id := range []int64{a.ID, b.ID} {
		found, err := f.cache.Exists(ctx, TreeCacheKey(id))
		require.NoError(t, err)
		assert.False(t, found)
	}
	found, err := f.cache.Exists(ctx, "brand:list")
	require.NoError(t, err)
	assert.True(t, found, "clear only touches province trees")
}

func TestProvinceService_TreeAndLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "P")
	city := f.node(t, c.ID, idPtr(p.ID), "City")
	f.node(t, c.ID, idPtr(city.ID), "District")

	full, err := f.provinces.GetTree(ctx, c.ID, 0)
	require.NoError(t, err)
	require.Len(t, full, 1)
	require.Len(t, full[0].Children, 1)
	assert.Len(t, full[0].Children[0].Children, 1)

	twoLevels, err := f.provinces.GetTree(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, twoLevels[0].Children[0].Children)

	lists, err := f.provinces.LocationLists(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, lists.Provinces, 1)
	assert.Len(t, lists.Cities, 1)
	assert.Len(t, lists.Districts, 1)

	_, err = f.provinces.GetTree(ctx, 999, 0)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProvinceService_ListGrid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "Ha Noi")
	f.node(t, c.ID, idPtr(p.ID), "Ba Dinh")
	f.node(t, c.ID, idPtr(p.ID), "Hoan Kiem")

	req := model.ProvinceQueryRequest{}
	req.Search.Levels = []model.Level{model.LevelCity}
	items, total, err := f.provinces.List(ctx, c.ID, req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Ha Noi", *items[0].ParentName)
	assert.Equal(t, "city", items[0].LevelName)

	req = model.ProvinceQueryRequest{Pagination: model.Pagination{Page: 2, Limit: 1}}
	req.Search.Name = "hoan"
	items, total, err = f.provinces.List(ctx, c.ID, req)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Empty(t, items)

	req = model.ProvinceQueryRequest{}
	req.Search.Levels = []model.Level{model.Level(8)}
	_, _, err = f.provinces.List(ctx, c.ID, req)
	assert.ErrorIs(t, err, model.ErrInvalidLevel)
}

// ========================================
// COUNTRY
// ========================================

func TestCountryService_IsoCodesUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vn := f.country(t, "Viet Nam", "VN")

	_, err := f.countries.Create(ctx, model.CountryCreateRequest{Name: "Other", TwoLetterIsoCode: strPtr("vn")})
	assert.ErrorIs(t, err, model.ErrDuplicateCountryCode)

	// update giữ nguyên code của chính nó
	updated, err := f.countries.Update(ctx, vn.ID, model.CountryCreateRequest{Name: "Vietnam", TwoLetterIsoCode: strPtr("VN")})
	require.NoError(t, err)
	assert.Equal(t, "Vietnam", updated.Name)

	// code của country đã xóa dùng lại được
	require.NoError(t, f.countries.Delete(ctx, vn.ID))
	f.country(t, "Viet Nam again", "VN")
}

func TestCountryService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.country(t, "A", "AA")
	p := f.node(t, c.ID, nil, "P")

	err := f.countries.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, model.ErrInUse)

	require.NoError(t, f.provinces.Delete(ctx, p.ID))
	f.refs.countries[c.ID] = true
	err = f.countries.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, model.ErrInUse)

	f.refs.countries[c.ID] = false
	require.NoError(t, f.countries.Delete(ctx, c.ID))

	_, err = f.countries.Get(ctx, c.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCountryService_ListWithCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.country(t, "Alpha", "AL")
	f.country(t, "Beta", "BE")
	f.node(t, a.ID, nil, "P1")
	f.node(t, a.ID, nil, "P2")

	req := model.CountryQueryRequest{}
	req.Search.Name = "alp"
	items, total, err := f.countries.List(ctx, req)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].StateOrProvinceCount)

	got, err := f.countries.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StateOrProvinceCount)
}
