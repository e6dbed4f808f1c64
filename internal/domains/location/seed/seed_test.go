package seed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
	"shop-backend/internal/domains/location/service"
	infraCache "shop-backend/internal/infrastructure/cache"
)

const sampleYAML = `
regions:
  - name: Hà Nội
    code: HN
    children:
      - name: Quận Ba Đình
        children:
          - name: Phường Điện Biên
      - name: Quận Hoàn Kiếm
  - name: Đà Nẵng
`

func TestParseYAML(t *testing.T) {
	regions, err := ParseYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	require.Len(t, regions, 2)
	assert.Equal(t, "HN", regions[0].Code)
	assert.Len(t, regions[0].Children, 2)
	assert.Equal(t, "Phường Điện Biên", regions[0].Children[0].Children[0].Name)
	assert.Equal(t, 5, Count(regions))
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("regions:\n  - code: X\n"))
	assert.ErrorContains(t, err, "name is required")

	_, err = ParseYAML(strings.NewReader("regions:\n  - name: A\n    parent: B\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func xlsxReader(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseXLSX_FillsDownParents(t *testing.T) {
	r := xlsxReader(t, [][]string{
		{"Province", "City", "District"},
		{"Hà Nội", "Quận Ba Đình", "Phường Điện Biên"},
		{"", "", "Phường Kim Mã"},
		{"", "Quận Hoàn Kiếm", ""},
		{"Đà Nẵng", "", ""},
	})

	regions, err := ParseXLSX(r, "")
	require.NoError(t, err)

	require.Len(t, regions, 2)
	hn := regions[0]
	assert.Equal(t, "Hà Nội", hn.Name)
	require.Len(t, hn.Children, 2)
	assert.Equal(t, "Quận Ba Đình", hn.Children[0].Name)
	assert.Len(t, hn.Children[0].Children, 2)
	assert.Equal(t, 1, hn.Children[1].DisplayOrder)
	assert.Empty(t, regions[1].Children)
}

func TestParseXLSX_DistrictWithoutCity(t *testing.T) {
	r := xlsxReader(t, [][]string{
		{"Province", "City", "District"},
		{"Hà Nội", "", "Phường Kim Mã"},
	})
	_, err := ParseXLSX(r, "")
	assert.ErrorContains(t, err, "without city")
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	_, err := ParseFile("regions.csv", strings.NewReader(""))
	assert.Error(t, err)
}

// ========================================
// IMPORTER
// ========================================

func newProvinceService(t *testing.T) (service.ProvinceService, int64) {
	t.Helper()
	store := repository.NewMemoryStore()
	trees := service.NewTreeCache(infraCache.NewMemoryCache(), store.Provinces(), nil)
	countryID, err := store.Countries().Create(context.Background(), &model.Country{Name: "Việt Nam", IsPublished: true})
	require.NoError(t, err)
	return service.NewProvinceService(store.Countries(), store.Provinces(), nil, trees, 0), countryID
}

func TestImporter_CreatesTreeWithLevels(t *testing.T) {
	ctx := context.Background()
	provinces, countryID := newProvinceService(t)
	regions, err := ParseYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	rows := 0
	im := NewImporter(provinces, true)
	im.OnRow = func() { rows++ }

	res, err := im.Import(ctx, countryID, regions)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Created)
	assert.Zero(t, res.Failed)
	assert.Equal(t, 5, rows)

	lists, err := provinces.LocationLists(ctx, countryID)
	require.NoError(t, err)
	assert.Len(t, lists.Provinces, 2)
	assert.Len(t, lists.Cities, 2)
	assert.Len(t, lists.Districts, 1)
}

func TestImporter_RerunSkipsExisting(t *testing.T) {
	ctx := context.Background()
	provinces, countryID := newProvinceService(t)
	regions, err := ParseYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	_, err = NewImporter(provinces, true).Import(ctx, countryID, regions)
	require.NoError(t, err)

	res, err := NewImporter(provinces, true).Import(ctx, countryID, regions)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Equal(t, 5, res.Skipped)

	all, err := provinces.ListByCountry(ctx, countryID)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestImporter_FailedNodeFailsSubtree(t *testing.T) {
	ctx := context.Background()
	provinces, countryID := newProvinceService(t)

	// street level không có con: node thứ 5 lỗi, con của nó cũng bị tính failed
	regions := []Region{{Name: "P", Children: []Region{{Name: "C", Children: []Region{{Name: "D", Children: []Region{
		{Name: "S", Children: []Region{{Name: "X", Children: []Region{{Name: "Y"}}}}},
	}}}}}}}

	res, err := NewImporter(provinces, false).Import(ctx, countryID, regions)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.True(t, errors.Is(res.Errors[0], model.ErrLevelExhausted))
}

func TestImporter_UnknownCountry(t *testing.T) {
	provinces, _ := newProvinceService(t)
	res, err := NewImporter(provinces, true).Import(context.Background(), 999, []Region{{Name: "A"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
}
