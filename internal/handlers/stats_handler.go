package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucStats "github.com/BruksfildServices01/barber-queue/internal/usecase/stats"
)

type StatsHandler struct {
	dashboard *ucStats.Dashboard
}

func NewStatsHandler(dashboard *ucStats.Dashboard) *StatsHandler {
	return &StatsHandler{dashboard: dashboard}
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, d)
}
