package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucStatus "github.com/BruksfildServices01/barber-queue/internal/usecase/status"
)

type StatusHandler struct {
	get *ucStatus.GetStatus
	set *ucStatus.SetStatus
}

func NewStatusHandler(get *ucStatus.GetStatus, set *ucStatus.SetStatus) *StatusHandler {
	return &StatusHandler{get: get, set: set}
}

type SetStatusRequest struct {
	Status string `json:"status"`
	// só para on_break; ausente = pausa sem prazo
	Minutes *int `json:"minutes"`
}

func (h *StatusHandler) Get(c *gin.Context) {
	st, err := h.get.Execute(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *StatusHandler) Set(c *gin.Context) {
	var req SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.set.Execute(c.Request.Context(), barberID(c), req.Status, req.Minutes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, st)
}
