package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/messages"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the client side: shop page, self check-in and the
// status page. Clients are identified only by the entry id they received.
type PublicHandler struct {
	barbers  barber.Repository
	services catalog.Repository
	entries  domain.Repository

	list    *ucQueue.ListWaiting
	enqueue *ucQueue.Enqueue
	rate    *ucQueue.Rate

	publicBaseURL string

	Now func() time.Time
}

func NewPublicHandler(
	barbers barber.Repository,
	services catalog.Repository,
	entries domain.Repository,
	list *ucQueue.ListWaiting,
	enqueue *ucQueue.Enqueue,
	rate *ucQueue.Rate,
	publicBaseURL string,
) *PublicHandler {
	return &PublicHandler{
		barbers:       barbers,
		services:      services,
		entries:       entries,
		list:          list,
		enqueue:       enqueue,
		rate:          rate,
		publicBaseURL: publicBaseURL,
		Now:           time.Now,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCheckInRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ServiceID uint   `json:"service_id"`
	Notes     string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) shop(c *gin.Context) (*models.User, bool) {
	u, err := h.barbers.FindBarberBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, barber.ErrBarberNotFound) {
			httperr.FromError(c, httperr.ErrNotFound("shop_not_found"))
			return nil, false
		}
		httperr.FromError(c, err)
		return nil, false
	}
	return u, true
}

func entryErr(err error) error {
	if errors.Is(err, domain.ErrEntryNotFound) {
		return httperr.ErrNotFound("entry_not_found")
	}
	return err
}

// entryStatus reads the entry and places it in the current waiting list.
func (h *PublicHandler) entryStatus(ctx context.Context, barberID uint, id string) (dto.PublicEntryStatus, error) {
	entry, err := h.entries.GetEntry(ctx, barberID, id)
	if err != nil {
		return dto.PublicEntryStatus{}, entryErr(err)
	}

	snap, err := h.list.Snapshot(ctx, barberID)
	if err != nil {
		return dto.PublicEntryStatus{}, err
	}
	return dto.BuildPublicStatus(entry, snap.Entries, snap.Status, h.Now()), nil
}

////////////////////////////////////////////////////////
// SHOP PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) Shop(c *gin.Context) {
	u, ok := h.shop(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	services, err := h.services.ListServices(ctx, u.ID, true)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	snap, err := h.list.Snapshot(ctx, u.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": u.Barbershop,
		"barber":     gin.H{"name": u.Name},
		"services":   services,
		"queue_size": len(snap.Entries),
		"status":     snap.Status,
	})
}

////////////////////////////////////////////////////////
// CHECK-IN
////////////////////////////////////////////////////////

func (h *PublicHandler) CheckIn(c *gin.Context) {
	u, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	// auto check-in sempre exige celular
	res, err := h.enqueue.Execute(c.Request.Context(), ucQueue.EnqueueInput{
		BarberID:  u.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		ServiceID: req.ServiceID,
		Notes:     req.Notes,
		Source:    ucQueue.SourceCheckIn,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	link := messages.StatusLink(h.publicBaseURL, u.Barbershop.Slug, res.Entry.ID)
	httpresp.Created(c, gin.H{
		"id":          res.Entry.ID,
		"position":    res.Position,
		"status_link": link,
		"message":     messages.JoinConfirmation(res.Entry.Name, res.Position, link),
	})
}

////////////////////////////////////////////////////////
// STATUS / RATING
////////////////////////////////////////////////////////

func (h *PublicHandler) EntryStatus(c *gin.Context) {
	u, ok := h.shop(c)
	if !ok {
		return
	}

	st, err := h.entryStatus(c.Request.Context(), u.ID, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *PublicHandler) Rate(c *gin.Context) {
	u, ok := h.shop(c)
	if !ok {
		return
	}

	var req RateRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.rate.Execute(c.Request.Context(), u.ID, c.Param("id"), req.Stars)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID, "rating": entry.Rating})
}
