package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/messages"
	"github.com/BruksfildServices01/barber-queue/internal/photos"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	enqueue  *ucQueue.Enqueue
	list     *ucQueue.ListWaiting
	update   *ucQueue.Update
	move     *ucQueue.Move
	complete *ucQueue.CompleteFirst
	undo     *ucQueue.UndoComplete
	cancel   *ucQueue.Cancel
	remove   *ucQueue.Remove
	rate     *ucQueue.Rate
	photo    *ucQueue.AttachPhoto
	pix      *ucQueue.PixCharge

	barbers  barber.Repository
	profiles crm.Repository
	entries  domain.Repository

	publicBaseURL string

	Now func() time.Time
}

type QueueHandlerDeps struct {
	Enqueue  *ucQueue.Enqueue
	List     *ucQueue.ListWaiting
	Update   *ucQueue.Update
	Move     *ucQueue.Move
	Complete *ucQueue.CompleteFirst
	Undo     *ucQueue.UndoComplete
	Cancel   *ucQueue.Cancel
	Remove   *ucQueue.Remove
	Rate     *ucQueue.Rate
	Photo    *ucQueue.AttachPhoto
	Pix      *ucQueue.PixCharge

	Barbers  barber.Repository
	Profiles crm.Repository
	Entries  domain.Repository

	PublicBaseURL string
}

func NewQueueHandler(d QueueHandlerDeps) *QueueHandler {
	return &QueueHandler{
		enqueue:       d.Enqueue,
		list:          d.List,
		update:        d.Update,
		move:          d.Move,
		complete:      d.Complete,
		undo:          d.Undo,
		cancel:        d.Cancel,
		remove:        d.Remove,
		rate:          d.Rate,
		photo:         d.Photo,
		pix:           d.Pix,
		barbers:       d.Barbers,
		profiles:      d.Profiles,
		entries:       d.Entries,
		publicBaseURL: d.PublicBaseURL,
		Now:           time.Now,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type EnqueueRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	NoPhone   bool   `json:"no_phone"`
	ServiceID uint   `json:"service_id"`
	Notes     string `json:"notes"`
}

type UpdateEntryRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	ServiceID *uint   `json:"service_id"`
	Notes     *string `json:"notes"`
}

type MoveRequest struct {
	Direction string `json:"direction"`
}

type CompleteRequest struct {
	HeadID        string `json:"head_id"`
	PaymentMethod string `json:"payment_method"`
}

type RateRequest struct {
	Stars int `json:"stars"`
}

// ======================================================
// LIST
// ======================================================

func (h *QueueHandler) List(c *gin.Context) {
	snap, err := h.list.Snapshot(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.BuildQueueView(snap.Entries, snap.Status, h.Now()))
}

// ======================================================
// ENQUEUE
// ======================================================

func (h *QueueHandler) Enqueue(c *gin.Context) {
	var req EnqueueRequest
	if !bindJSON(c, &req) {
		return
	}

	id := barberID(c)
	res, err := h.enqueue.Execute(c.Request.Context(), ucQueue.EnqueueInput{
		BarberID:  id,
		ActorID:   actorID(c),
		Name:      req.Name,
		Phone:     req.Phone,
		Phoneless: req.NoPhone,
		ServiceID: req.ServiceID,
		Notes:     req.Notes,
		Source:    ucQueue.SourceBarber,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, h.joined(c, id, res))
}

// joined adds the confirmation text and the WhatsApp link the barber sends.
func (h *QueueHandler) joined(c *gin.Context, id uint, res *ucQueue.EnqueueResult) gin.H {
	out := gin.H{
		"entry":    res.Entry,
		"position": res.Position,
		"effects":  res.Effects,
	}

	u, err := h.barbers.GetBarber(c.Request.Context(), id)
	if err != nil {
		return out
	}

	link := messages.StatusLink(h.publicBaseURL, u.Barbershop.Slug, res.Entry.ID)
	text := messages.JoinConfirmation(res.Entry.Name, res.Position, link)
	out["status_link"] = link
	out["message"] = text
	if res.Entry.Phone != "" {
		out["whatsapp_link"] = messages.WhatsAppLink(res.Entry.Phone, text)
	}
	return out
}

// ======================================================
// UPDATE / MOVE / REMOVE
// ======================================================

func (h *QueueHandler) Update(c *gin.Context) {
	var req UpdateEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.update.Execute(c.Request.Context(), ucQueue.UpdateInput{
		BarberID:  barberID(c),
		ActorID:   actorID(c),
		EntryID:   c.Param("id"),
		Name:      req.Name,
		Phone:     req.Phone,
		ServiceID: req.ServiceID,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

func (h *QueueHandler) Move(c *gin.Context) {
	var req MoveRequest
	if !bindJSON(c, &req) {
		return
	}

	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	list, err := h.move.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"), dir)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *QueueHandler) Remove(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *QueueHandler) Complete(c *gin.Context) {
	var req CompleteRequest
	if !bindJSON(c, &req) {
		return
	}

	id := barberID(c)
	res, err := h.complete.Execute(c.Request.Context(), ucQueue.CompleteFirstInput{
		BarberID:      id,
		ActorID:       actorID(c),
		HeadID:        req.HeadID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := gin.H{
		"entry":        res.Entry,
		"already_done": res.AlreadyDone,
		"effects":      res.Effects,
	}

	// cartão fidelidade para compartilhar
	if key := crm.NormalizePhone(res.Entry.Phone); key != "" {
		if p, err := h.profiles.GetProfile(c.Request.Context(), id, key); err == nil {
			visits := crm.DisplayVisits(p)
			out["loyalty"] = crm.Loyalty(visits)
			out["loyalty_share_link"] = messages.WhatsAppLink(res.Entry.Phone, messages.LoyaltyShare(res.Entry.Name, visits))
		}
	}

	httpresp.OK(c, out)
}

func (h *QueueHandler) Undo(c *gin.Context) {
	entry, err := h.undo.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

func (h *QueueHandler) Cancel(c *gin.Context) {
	entry, err := h.cancel.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

func (h *QueueHandler) Rate(c *gin.Context) {
	var req RateRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.rate.Execute(c.Request.Context(), barberID(c), c.Param("id"), req.Stars)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

// ======================================================
// STATUS MESSAGE
// ======================================================

// StatusMessage builds the "your position" text for one waiting client.
func (h *QueueHandler) StatusMessage(c *gin.Context) {
	ctx := c.Request.Context()
	id := barberID(c)

	snap, err := h.list.Snapshot(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	pos := domain.Position(snap.Entries, c.Param("id"))
	if pos == 0 {
		httperr.FromError(c, httperr.ErrNotFound("entry_not_found"))
		return
	}

	e := snap.Entries[pos-1]
	eta := domain.EstimatedWait(snap.Entries, pos-1, snap.Status, h.Now())
	text := messages.StatusUpdate(e.Name, pos, eta)

	out := gin.H{"position": pos, "estimated_wait": eta, "message": text}
	if e.Phone != "" {
		out["whatsapp_link"] = messages.WhatsAppLink(e.Phone, text)
	}
	httpresp.OK(c, out)
}

// ======================================================
// PHOTO / PIX
// ======================================================

func (h *QueueHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, photos.MaxUploadBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.FromError(c, httperr.ErrValidation("invalid_image"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, httperr.ErrValidation("invalid_image"))
		return
	}
	defer f.Close()

	entry, err := h.photo.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, entry)
}

func (h *QueueHandler) Pix(c *gin.Context) {
	charge, err := h.pix.Execute(c.Request.Context(), barberID(c), actorID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, charge)
}

// ======================================================
// HISTORY
// ======================================================

// History lists completed entries, newest first, optionally since a date.
func (h *QueueHandler) History(c *gin.Context) {
	var since time.Time
	if s := c.Query("since"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.FromError(c, httperr.ErrValidation("invalid_date_or_time"))
			return
		}
		since = t
	}

	done, err := h.entries.ListCompleted(c.Request.Context(), barberID(c), since)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	for i, j := 0, len(done)-1; i < j; i, j = i+1, j-1 {
		done[i], done[j] = done[j], done[i]
	}
	httpresp.List(c, done)
}
