package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

// maxOrderAttempts bounds retries when two callers pick the same order key.
const maxOrderAttempts = 3

func publish(ctx context.Context, pub live.Publisher, barberID uint) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, barberID); err != nil {
		slog.Warn("queue change not published", "barber_id", barberID, "error", err)
	}
}

func mapEntryErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return httperr.ErrNotFound("entry_not_found")
	case errors.Is(err, domain.ErrOrderConflict):
		return httperr.ErrConflict("order_conflict")
	}
	return err
}

func record(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.Transitions.WithLabelValues(action, result).Inc()
}

func dispatch(d *audit.Dispatcher, barberID uint, actorID *uint, action, entryID string, meta any) {
	d.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   actorID,
		Action:   action,
		Entity:   "queue_entry",
		EntityID: entryID,
		Metadata: meta,
	})
}
