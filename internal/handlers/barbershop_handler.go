package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

type BarbershopHandler struct {
	barbers barber.Repository
}

func NewBarbershopHandler(barbers barber.Repository) *BarbershopHandler {
	return &BarbershopHandler{barbers: barbers}
}

type UpdateBarbershopRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func mapBarberErr(err error) error {
	if errors.Is(err, barber.ErrBarberNotFound) {
		return httperr.ErrNotFound("barber_not_found")
	}
	return err
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	user, err := h.barbers.GetBarber(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, mapBarberErr(err))
		return
	}
	c.JSON(http.StatusOK, user.Barbershop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.barbers.GetBarber(ctx, barberID(c))
	if err != nil {
		httperr.FromError(c, mapBarberErr(err))
		return
	}

	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop := user.Barbershop

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.FromError(c, httperr.ErrValidation("name_required"))
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.FromError(c, httperr.ErrValidation("invalid_timezone"))
			return
		}
		shop.Timezone = *req.Timezone
	}

	if err := h.barbers.SaveBarbershop(ctx, &shop); err != nil {
		httperr.FromError(c, mapBarberErr(err))
		return
	}

	c.JSON(http.StatusOK, shop)
}
