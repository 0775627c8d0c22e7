package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

type MeHandler struct {
	barbers barber.Repository
}

func NewMeHandler(barbers barber.Repository) *MeHandler {
	return &MeHandler{barbers: barbers}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.barbers.GetBarber(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, mapBarberErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       userView(user),
		"barbershop": user.Barbershop,
	})
}
