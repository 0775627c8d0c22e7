package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
}

func NewAuditLogsHandler(logs audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filtros opcionais (sempre protegido pelo barbeiro)
	// --------------------------------------------------

	q := audit.Query{
		BarberID: barberID(c),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	if s := c.Query("from"); s != "" {
		if from, err := time.Parse("2006-01-02", s); err == nil {
			q.From = &from
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := time.Parse("2006-01-02", s); err == nil {
			end := to.Add(24 * time.Hour)
			q.To = &end
		}
	}

	logs, total, err := h.logs.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
