package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/usecase/stats"
)

type StatsHandler struct {
	dashboard *stats.DashboardStats
	barber    *stats.BarberStats
}

func NewStatsHandler(dashboard *stats.DashboardStats, barber *stats.BarberStats) *StatsHandler {
	return &StatsHandler{dashboard: dashboard, barber: barber}
}

// Dashboard is manager-only.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	res, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Barber lets a barber read their own stats; managers may read anyone's.
func (h *StatsHandler) Barber(c *gin.Context) {
	barberID := c.Param("id")
	if own := middleware.OwnBarberScope(c); own != "" && own != barberID {
		httperr.Respond(c, httperr.ErrForbidden("forbidden"))
		return
	}

	res, err := h.barber.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
