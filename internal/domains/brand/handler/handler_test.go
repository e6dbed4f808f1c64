package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/brand/repository"
	"shop-backend/internal/domains/brand/service"
	infraCache "shop-backend/internal/infrastructure/cache"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBrandHandler(service.NewBrandService(repository.NewMemoryRepository(), infraCache.NewMemoryCache()))

	r := gin.New()
	r.GET("/brands", h.ListPublished)
	r.POST("/brands/grid", h.Grid)
	r.GET("/brands/:id", h.Get)
	r.POST("/brands", h.Create)
	r.PUT("/brands/:id", h.Update)
	r.DELETE("/brands/:id", h.Delete)
	r.POST("/brands/clear-cache", h.ClearCache)
	return r
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrandHandler_CRUD(t *testing.T) {
	r := setupRouter()

	w := send(r, http.MethodPost, "/brands", map[string]any{"name": "Sony", "is_published": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID   int64  `json:"id"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "sony", created.Data.Slug)

	w = send(r, http.MethodPost, "/brands", map[string]any{"name": "SONY"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(r, http.MethodGet, "/brands", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"sony"`)

	w = send(r, http.MethodPost, "/brands/grid", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = send(r, http.MethodPost, "/brands/clear-cache", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodDelete, "/brands/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodGet, "/brands/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrandHandler_BadInput(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bad id", http.MethodGet, "/brands/abc", nil, http.StatusBadRequest},
		{"missing name", http.MethodPost, "/brands", map[string]any{"name": ""}, http.StatusBadRequest},
		{"unsluggable", http.MethodPost, "/brands", map[string]any{"name": "???"}, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/brands/42", map[string]any{"name": "X"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}
