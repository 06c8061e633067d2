package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"l1board/config"
	"l1board/services"
)

// Handler carries the shared dependencies for the system endpoints.
type Handler struct {
	Cfg     *config.Config
	Cache   *services.CacheService
	startAt time.Time
}

func NewHandler(cfg *config.Config, cache *services.CacheService) *Handler {
	return &Handler{
		Cfg:     cfg,
		Cache:   cache,
		startAt: time.Now(),
	}
}

// GetHealth returns OK
func (h *Handler) GetHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetStatus returns backend status
func (h *Handler) GetStatus(c echo.Context) error {
	status := map[string]interface{}{
		"status":     "running",
		"uptime":     time.Since(h.startAt).String(),
		"cache_mode": string(h.Cache.Mode()),
		"timestamp":  time.Now(),
	}
	return c.JSON(http.StatusOK, status)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
