package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"l1board/models"
	"l1board/services"
)

// ChartHandlers drives per-address chart sessions.
type ChartHandlers struct {
	registry *services.SessionRegistry
}

func NewChartHandlers(registry *services.SessionRegistry) *ChartHandlers {
	return &ChartHandlers{
		registry: registry,
	}
}

// ChartStateResponse wraps the composed chart state with the canonical period
// value, so clients can mirror it back into their own query string.
type ChartStateResponse struct {
	Period string            `json:"period"`
	State  models.ChartState `json:"state"`
}

// GetChart godoc
// @Summary Get chart state for an operator address
// @Description Applies the selected period to the address's chart session and
// @Description returns the composed display state. The first call for a new
// @Description address/period starts a fetch; poll until is_loading clears.
// @Tags chart
// @Produce json
// @Success 200 {object} ChartStateResponse
// @Router /api/chart/{address} [get]
func (ch *ChartHandlers) GetChart(c echo.Context) error {
	address := c.Param("address")
	if address == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "address is required"})
	}

	// Read half of the query-string binding: absent or invalid values fall
	// back to the default period.
	period := models.PeriodFromQuery(c.QueryParam(models.PeriodQueryKey))

	session := ch.registry.Session(address)
	session.SetView(address, period)

	return c.JSON(http.StatusOK, ChartStateResponse{
		// Write half of the binding: always the canonical value.
		Period: session.Period().QueryValue(),
		State:  session.Snapshot(),
	})
}
