package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLevel_Next(t *testing.T) {
	tests := []struct {
		in      Level
		want    Level
		wantErr error
	}{
		{LevelDefault, LevelCity, nil},
		{LevelCity, LevelDistrict, nil},
		{LevelDistrict, LevelStreet, nil},
		{LevelStreet, LevelStreet, ErrLevelExhausted},
		{Level(9), Level(9), ErrInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := tt.in.Next()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"province": LevelProvince,
		"default":  LevelDefault,
		" City ":   LevelCity,
		"2":        LevelDistrict,
		"street":   LevelStreet,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("village")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func sampleNodes() []Province {
	// P1 ── C1 ── D1
	//   └── C2
	// P2
	// X (orphan: parent 99 missing)
	return []Province{
		{ID: 1, CountryID: 1, Name: "P1", Level: LevelDefault},
		{ID: 2, CountryID: 1, Name: "P2", Level: LevelDefault},
		{ID: 10, CountryID: 1, ParentID: ptr(int64(1)), Name: "C1", Level: LevelCity},
		{ID: 11, CountryID: 1, ParentID: ptr(int64(1)), Name: "C2", Level: LevelCity},
		{ID: 20, CountryID: 1, ParentID: ptr(int64(10)), Name: "D1", Level: LevelDistrict},
		{ID: 30, CountryID: 1, ParentID: ptr(int64(99)), Name: "X", Level: LevelCity},
	}
}

func TestBuildTree_Index(t *testing.T) {
	tree := BuildTree(1, sampleNodes())

	assert.Equal(t, []int64{1, 2}, tree.Roots)
	assert.Equal(t, []int64{10, 11}, tree.Children[1])
	assert.Equal(t, []int64{20}, tree.Children[10])
	assert.Empty(t, tree.Children[2])

	orphan, ok := tree.Get(30)
	require.True(t, ok)
	assert.Equal(t, "X", orphan.Name)
}

func TestProvinceTree_Render(t *testing.T) {
	tree := BuildTree(1, sampleNodes())

	full := tree.Render(0)
	require.Len(t, full, 2)
	require.Len(t, full[0].Children, 2)
	require.Len(t, full[0].Children[0].Children, 1)
	assert.Equal(t, "D1", full[0].Children[0].Children[0].Name)

	twoLevels := tree.Render(2)
	require.Len(t, twoLevels[0].Children, 2)
	assert.Empty(t, twoLevels[0].Children[0].Children)

	rootsOnly := tree.Render(1)
	assert.Empty(t, rootsOnly[0].Children)
}

func TestProvinceTree_SurvivesJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(BuildTree(1, sampleNodes()))
	require.NoError(t, err)

	var decoded ProvinceTree
	require.NoError(t, json.Unmarshal(data, &decoded))

	p, ok := decoded.Get(20)
	require.True(t, ok)
	assert.Equal(t, "D1", p.Name)
	assert.Equal(t, []int64{10, 11}, decoded.Children[1])
}

func TestProvinceTree_AncestorsAndByLevel(t *testing.T) {
	tree := BuildTree(1, sampleNodes())

	chain := tree.Ancestors(20)
	require.Len(t, chain, 3)
	assert.Equal(t, []string{"P1", "C1", "D1"}, []string{chain[0].Name, chain[1].Name, chain[2].Name})

	assert.Len(t, tree.Ancestors(30), 1)
	assert.Empty(t, tree.Ancestors(404))

	cities := tree.ByLevel(LevelCity)
	assert.Len(t, cities, 3)
	assert.Empty(t, tree.ByLevel(LevelStreet))
}

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{NewProvinceNotFound(1), http.StatusNotFound, CodeNotFound},
		{NewCountryNotFound(1), http.StatusNotFound, CodeCountryNotFound},
		{NewInUse("Province", 1, "children"), http.StatusConflict, CodeInUse},
		{NewDuplicateSibling("x"), http.StatusConflict, CodeDuplicateSibling},
		{NewHasChildren(1), http.StatusConflict, CodeHasChildren},
		{NewDuplicateCountryCode("two_letter_iso_code", "VN"), http.StatusConflict, CodeDuplicateCountryCode},
		{NewParentNotFound(1), http.StatusBadRequest, CodeParentNotFound},
		{NewSelfParent(1), http.StatusBadRequest, CodeSelfParent},
		{NewLevelExhausted(1), http.StatusBadRequest, CodeLevelExhausted},
		{fmt.Errorf("wrapped: %w", NewSelfParent(1)), http.StatusBadRequest, CodeSelfParent},
		{errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRequestValidation(t *testing.T) {
	bad := CountryCreateRequest{Name: "", TwoLetterIsoCode: ptr("VNM")}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "two_letter_iso_code")

	req := CountryCreateRequest{Name: " Viet Nam ", TwoLetterIsoCode: ptr(" vn "), ThreeLetterIsoCode: ptr("")}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "VN", *req.TwoLetterIsoCode)
	assert.Nil(t, req.ThreeLetterIsoCode)

	p := ProvinceCreateRequest{Name: "  ", Code: ptr("  ")}
	p.Normalize()
	assert.Nil(t, p.Code)
	assert.Error(t, p.Validate())

	q := ProvinceQueryRequest{Search: ProvinceFilter{Levels: []Level{LevelCity, Level(7)}}}
	assert.ErrorIs(t, q.Validate(), ErrInvalidLevel)
}

func TestPagination_Normalize(t *testing.T) {
	p := Pagination{Page: 0, Limit: 1000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, Limit: 0}
	p.Normalize()
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Equal(t, 40, p.Offset())
}
