package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"l1board/services"
)

// CacheHandlers exposes cache admin endpoints
type CacheHandlers struct {
	cache *services.CacheService
}

func NewCacheHandlers(cache *services.CacheService) *CacheHandlers {
	return &CacheHandlers{
		cache: cache,
	}
}

// GetCacheStatus godoc
func (ch *CacheHandlers) GetCacheStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, ch.cache.Status())
}

// ClearCache godoc
func (ch *CacheHandlers) ClearCache(c echo.Context) error {
	ch.cache.Clear(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "cache cleared"})
}
