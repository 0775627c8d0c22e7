package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
)

func barberID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// actorID is the authenticated barber, recorded in the audit log.
func actorID(c *gin.Context) *uint {
	id := barberID(c)
	return &id
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.FromError(c, httperr.ErrValidation("invalid_id"))
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Dados inválidos na requisição.")
		return false
	}
	return true
}
