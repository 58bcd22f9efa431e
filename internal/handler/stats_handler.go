package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"elearn/internal/errors"
	"elearn/internal/service"
)

// StatsHandler handles the admin statistics endpoint.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Platform godoc
// @Summary Platform-wide totals for the admin dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} service.PlatformStats
// @Router /admin/stats [get]
func (h *StatsHandler) Platform(c echo.Context) error {
	stats, err := h.statsService.PlatformStats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
