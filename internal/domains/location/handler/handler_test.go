package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/location/repository"
	"shop-backend/internal/domains/location/service"
	infraCache "shop-backend/internal/infrastructure/cache"
	"shop-backend/internal/shared"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	trees := service.NewTreeCache(infraCache.NewMemoryCache(), store.Provinces(), nil)
	countryHandler := NewCountryHandler(service.NewCountryService(store.Countries(), nil, trees))
	provinceHandler := NewProvinceHandler(service.NewProvinceService(store.Countries(), store.Provinces(), nil, trees, 3), 1)

	r := gin.New()
	countries := r.Group("/api/v1/countries")
	countries.POST("/grid", countryHandler.Grid)
	countries.GET("", countryHandler.ListAll)
	countries.GET("/:id", countryHandler.Get)
	countries.POST("", countryHandler.Create)
	countries.PUT("/:id", countryHandler.Update)
	countries.DELETE("/:id", countryHandler.Delete)

	provinces := countries.Group("/provinces")
	provinces.POST("/grid/:countryId", provinceHandler.Grid)
	provinces.GET("/tree/:countryId", provinceHandler.Tree)
	provinces.GET("/:id", provinceHandler.Get)
	provinces.POST("/:countryId", provinceHandler.Create)
	provinces.PUT("/:id", provinceHandler.Update)
	provinces.DELETE("/:id", provinceHandler.Delete)

	r.GET("/api/v1/user-addresses/provinces", provinceHandler.LocationLists)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func createdID(t *testing.T, env envelope) int64 {
	t.Helper()
	var obj struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &obj))
	return obj.ID
}

func TestProvinceEndpoints_Lifecycle(t *testing.T) {
	r := setupRouter()

	w, env := do(t, r, http.MethodPost, "/api/v1/countries", gin.H{"name": "Country C", "two_letter_iso_code": "cc"})
	require.Equal(t, http.StatusCreated, w.Code)
	countryID := createdID(t, env)

	w, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID), gin.H{"name": "P"})
	require.Equal(t, http.StatusCreated, w.Code)
	pID := createdID(t, env)

	w, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID),
		gin.H{"name": "Downtown", "parent_id": pID})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"level":1`)
	downtownID := createdID(t, env)

	w, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID),
		gin.H{"name": "Downtown", "parent_id": pID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "DUPLICATE_SIBLING", env.Error.Code)

	w, env = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/countries/provinces/%d", pID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LOCATION_IN_USE", env.Error.Code)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/countries/provinces/%d", downtownID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"parent_name":"P"`)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/countries/provinces/tree/%d?depth=2", countryID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Downtown")

	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/countries/provinces/%d", downtownID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/grid/%d", countryID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 1, env.Meta.Total)
	assert.NotContains(t, string(env.Data), "Downtown")
}

func TestProvinceEndpoints_FailureCarriesTopLevelMessage(t *testing.T) {
	r := setupRouter()
	_, env := do(t, r, http.MethodPost, "/api/v1/countries", gin.H{"name": "C"})
	countryID := createdID(t, env)
	_, env = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID), gin.H{"name": "P"})
	pID := createdID(t, env)

	path := fmt.Sprintf("/api/v1/countries/provinces/%d", countryID)
	w, _ := do(t, r, http.MethodPost, path, gin.H{"name": "Downtown", "parent_id": pID})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = do(t, r, http.MethodPost, path, gin.H{"name": "Downtown", "parent_id": pID})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_SIBLING", env.Error.Code)
	assert.NotEmpty(t, env.Message)
	assert.Equal(t, env.Error.Message, env.Message)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "message")
}

func TestProvinceEndpoints_Errors(t *testing.T) {
	r := setupRouter()
	_, env := do(t, r, http.MethodPost, "/api/v1/countries", gin.H{"name": "C"})
	countryID := createdID(t, env)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/api/v1/countries/provinces/abc", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing node", http.MethodGet, "/api/v1/countries/provinces/999", nil, http.StatusNotFound, "LOCATION_NOT_FOUND"},
		{"missing country", http.MethodPost, "/api/v1/countries/provinces/999", gin.H{"name": "X"}, http.StatusNotFound, "COUNTRY_NOT_FOUND"},
		{"missing parent", http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID),
			gin.H{"name": "X", "parent_id": 999}, http.StatusBadRequest, "PARENT_NOT_FOUND"},
		{"blank name", http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/%d", countryID),
			gin.H{"name": ""}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad depth", http.MethodGet, fmt.Sprintf("/api/v1/countries/provinces/tree/%d?depth=x", countryID), nil,
			http.StatusBadRequest, "BAD_REQUEST"},
		{"invalid level filter", http.MethodPost, fmt.Sprintf("/api/v1/countries/provinces/grid/%d", countryID),
			gin.H{"search": gin.H{"level": []int{9}}}, http.StatusBadRequest, "INVALID_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCountryEndpoints(t *testing.T) {
	r := setupRouter()

	w, env := do(t, r, http.MethodPost, "/api/v1/countries", gin.H{"name": "Viet Nam", "two_letter_iso_code": "VN"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := createdID(t, env)

	w, env = do(t, r, http.MethodPost, "/api/v1/countries", gin.H{"name": "Dup", "two_letter_iso_code": "VN"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_COUNTRY_CODE", env.Error.Code)

	w, env = do(t, r, http.MethodPut, fmt.Sprintf("/api/v1/countries/%d", id), gin.H{"name": "Vietnam", "two_letter_iso_code": "VN"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Vietnam")

	w, env = do(t, r, http.MethodPost, "/api/v1/countries/grid", gin.H{"page": 1, "limit": 10, "search": gin.H{"name": "viet"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta.Total)

	w, _ = do(t, r, http.MethodGet, "/api/v1/countries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/user-addresses/provinces", nil)
	require.Equal(t, http.StatusOK, w.Code, "default country id 1")
	assert.Contains(t, string(env.Data), `"provinces":[]`)

	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/countries/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/v1/countries/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "COUNTRY_NOT_FOUND", env.Error.Code)
}

func TestHandleError_LogsUnexpectedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	r := gin.New()
	r.GET("/boom/:id", func(c *gin.Context) {
		c.Set(shared.ContextKeyRequestID, "req-1")
		handleError(c, errors.New("connection reset"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")

	logged := buf.String()
	assert.Contains(t, logged, `"error":"connection reset"`)
	assert.Contains(t, logged, `"path":"/boom/:id"`)
	assert.Contains(t, logged, `"request_id":"req-1"`)
	assert.Contains(t, logged, "location request failed")
}
