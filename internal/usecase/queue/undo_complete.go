package queue

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// UndoComplete puts a done entry back at the front of the queue. Stock,
// visit count and gallery are left as they are.
type UndoComplete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	pub   live.Publisher
}

func NewUndoComplete(repo domain.Repository, audit *audit.Dispatcher, pub live.Publisher) *UndoComplete {
	return &UndoComplete{repo: repo, audit: audit, pub: pub}
}

func (uc *UndoComplete) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string) (*models.QueueEntry, error) {
	var (
		entry   *models.QueueEntry
		changed bool
		err     error
	)

	for attempt := 0; attempt < maxOrderAttempts; attempt++ {
		var min *int64
		min, err = uc.repo.MinWaitingOrder(ctx, barberID)
		if err != nil {
			return nil, err
		}
		front := domain.FrontOrder(min)

		entry, changed, err = uc.repo.TransitionEntry(ctx, barberID, entryID, domain.Transition{
			From:           domain.StatusDone,
			To:             domain.StatusWaiting,
			ClearCompleted: true,
			Order:          &front,
		})
		if !errors.Is(err, domain.ErrOrderConflict) {
			break
		}
		metrics.OrderConflicts.Inc()
	}
	record("undo", err)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	if !changed {
		if entry.Status == string(domain.StatusWaiting) {
			// já desfeito
			return entry, nil
		}
		return nil, domain.CanUndo(domain.Status(entry.Status))
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_reopened", entry.ID, nil)
	publish(ctx, uc.pub, barberID)
	return entry, nil
}
