package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucCRM "github.com/BruksfildServices01/barber-queue/internal/usecase/crm"
)

type CRMHandler struct {
	upsert   *ucCRM.UpsertProfile
	get      *ucCRM.GetProfile
	list     *ucCRM.ListProfiles
	inactive *ucCRM.ListInactive
	backfill *ucCRM.Backfill

	inactiveDays int
}

func NewCRMHandler(
	upsert *ucCRM.UpsertProfile,
	get *ucCRM.GetProfile,
	list *ucCRM.ListProfiles,
	inactive *ucCRM.ListInactive,
	backfill *ucCRM.Backfill,
	inactiveDays int,
) *CRMHandler {
	return &CRMHandler{
		upsert:       upsert,
		get:          get,
		list:         list,
		inactive:     inactive,
		backfill:     backfill,
		inactiveDays: inactiveDays,
	}
}

type UpsertProfileRequest struct {
	Name        *string    `json:"name"`
	LastVisit   *time.Time `json:"last_visit"`
	LastService *string    `json:"last_service"`
}

func (h *CRMHandler) List(c *gin.Context) {
	profiles, err := h.list.Execute(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, profiles)
}

func (h *CRMHandler) Get(c *gin.Context) {
	view, err := h.get.Execute(c.Request.Context(), barberID(c), c.Param("phone"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

// Upsert edits identity fields only. Visit counters move through completion.
func (h *CRMHandler) Upsert(c *gin.Context) {
	var req UpsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.upsert.Execute(c.Request.Context(), barberID(c), c.Param("phone"), crm.ProfileUpdate{
		Name:        req.Name,
		LastVisit:   req.LastVisit,
		LastService: req.LastService,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

// Inactive: GET /me/clients/inactive?days=20
func (h *CRMHandler) Inactive(c *gin.Context) {
	days := h.inactiveDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httperr.FromError(c, httperr.ErrValidation("invalid_payload"))
			return
		}
		days = n
	}

	list, err := h.inactive.Execute(c.Request.Context(), barberID(c), days)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CRMHandler) Backfill(c *gin.Context) {
	n, err := h.backfill.Execute(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"profiles": n})
}
