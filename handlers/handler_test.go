package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l1board/config"
	"l1board/handlers"
	"l1board/services"
)

func newTestCache() *services.CacheService {
	cfg := &config.Config{}
	cfg.Redis.Enabled = false
	return services.NewCacheService(cfg)
}

func TestGetHealth(t *testing.T) {
	h := handlers.NewHandler(&config.Config{}, newTestCache())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.GetHealth(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGetStatus(t *testing.T) {
	h := handlers.NewHandler(&config.Config{}, newTestCache())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.GetStatus(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "in-memory", body["cache_mode"])
}

func TestCacheEndpoints(t *testing.T) {
	cache := newTestCache()
	ch := handlers.NewCacheHandlers(cache)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/cache/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ch.GetCacheStatus(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "in-memory", status["mode"])

	req = httptest.NewRequest(http.MethodPost, "/cache/clear", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, ch.ClearCache(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
