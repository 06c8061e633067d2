package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"l1board/models"
	"l1board/services"
)

// AlertHandlers manages alert-rule endpoints
type AlertHandlers struct {
	alertService *services.AlertService
}

func NewAlertHandlers(alertService *services.AlertService) *AlertHandlers {
	return &AlertHandlers{
		alertService: alertService,
	}
}

// CreateRule godoc
func (ah *AlertHandlers) CreateRule(c echo.Context) error {
	var rule models.AlertRule
	if err := c.Bind(&rule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := ah.alertService.CreateRule(&rule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, rule)
}

// ListRules godoc
func (ah *AlertHandlers) ListRules(c echo.Context) error {
	return c.JSON(http.StatusOK, ah.alertService.ListRules())
}

// GetRule godoc
func (ah *AlertHandlers) GetRule(c echo.Context) error {
	id := c.Param("id")

	rule, found := ah.alertService.GetRule(id)
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "alert rule not found"})
	}

	return c.JSON(http.StatusOK, rule)
}

// UpdateRule godoc
func (ah *AlertHandlers) UpdateRule(c echo.Context) error {
	id := c.Param("id")

	var rule models.AlertRule
	if err := c.Bind(&rule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := ah.alertService.UpdateRule(id, &rule); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, rule)
}

// DeleteRule godoc
func (ah *AlertHandlers) DeleteRule(c echo.Context) error {
	id := c.Param("id")

	if err := ah.alertService.DeleteRule(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "alert rule deleted"})
}

// GetHistory godoc
func (ah *AlertHandlers) GetHistory(c echo.Context) error {
	limit := 100
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	return c.JSON(http.StatusOK, ah.alertService.History(limit))
}

// TestRule godoc
func (ah *AlertHandlers) TestRule(c echo.Context) error {
	id := c.Param("id")

	if err := ah.alertService.TestRule(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "test alert sent"})
}
