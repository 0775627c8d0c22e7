package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
)

// StatusRemoved is the last frame of an entry feed whose ticket was deleted.
const StatusRemoved = "removed"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// o painel e a página de status podem estar em outro domínio
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveHandler pushes queue snapshots over websocket. The barber feed carries
// the full view; the public feed only the client's own entry.
type LiveHandler struct {
	hub    *live.Hub
	public *PublicHandler
}

func NewLiveHandler(hub *live.Hub, public *PublicHandler) *LiveHandler {
	return &LiveHandler{hub: hub, public: public}
}

// BarberFeed: GET /api/me/queue/live
func (h *LiveHandler) BarberFeed(c *gin.Context) {
	id := barberID(c)
	h.stream(c, id, func(ctx context.Context, snap live.Snapshot) (any, bool, error) {
		return dto.BuildQueueView(snap.Entries, snap.Status, snap.At), false, nil
	})
}

// EntryFeed: GET /api/public/:slug/queue/:id/live
func (h *LiveHandler) EntryFeed(c *gin.Context) {
	u, ok := h.public.shop(c)
	if !ok {
		return
	}
	entryID := c.Param("id")

	// 404 antes do upgrade
	if _, err := h.public.entries.GetEntry(c.Request.Context(), u.ID, entryID); err != nil {
		httperr.FromError(c, entryErr(err))
		return
	}

	h.stream(c, u.ID, func(ctx context.Context, snap live.Snapshot) (any, bool, error) {
		entry, err := h.public.entries.GetEntry(ctx, u.ID, entryID)
		if errors.Is(err, domain.ErrEntryNotFound) {
			return gin.H{"id": entryID, "status": StatusRemoved}, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		return dto.BuildPublicStatus(entry, snap.Entries, snap.Status, snap.At), false, nil
	})
}

// renderFunc turns a snapshot into the next frame. last ends the stream
// after that frame is written.
type renderFunc func(ctx context.Context, snap live.Snapshot) (msg any, last bool, err error)

func (h *LiveHandler) stream(c *gin.Context, barberID uint, render renderFunc) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub, err := h.hub.Subscribe(ctx, barberID)
	if err != nil {
		if errors.Is(err, live.ErrAccessDenied) {
			httperr.FromError(c, httperr.ErrNotFound("access_denied"))
			return
		}
		httperr.FromError(c, err)
		return
	}
	defer sub.Cancel()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "barber_id", barberID, "error", err)
		return
	}
	defer ws.Close()

	// leitor só para detectar desconexão e responder pong
	go func() {
		defer cancel()
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case snap, ok := <-sub.C():
			if !ok {
				return
			}
			msg, last, err := render(ctx, snap)
			if err != nil {
				// falha transitória: mantém a conexão e espera o próximo snapshot
				slog.Warn("live render failed", "barber_id", barberID, "error", err)
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(msg); err != nil {
				slog.Info("websocket client gone", "barber_id", barberID, "error", err)
				return
			}
			if last {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, StatusRemoved),
					time.Now().Add(writeWait))
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
