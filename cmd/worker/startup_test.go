package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"shop-backend/pkg/container"
)

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// port 1 không có gì lắng nghe nên /ready phải báo lỗi
	checker := newHealthChecker(&container.Container{}, &Config{
		RedisOpt: asynq.RedisClientOpt{Addr: "127.0.0.1:1"},
	})
	defer checker.Close()
	r := healthRouter(checker)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UP")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Redis Connection")
}
