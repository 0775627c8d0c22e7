package queue

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	pub   live.Publisher

	Now func() time.Time
}

func NewCancel(repo domain.Repository, audit *audit.Dispatcher, pub live.Publisher) *Cancel {
	return &Cancel{repo: repo, audit: audit, pub: pub, Now: time.Now}
}

func (uc *Cancel) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string) (*models.QueueEntry, error) {
	now := uc.Now()
	entry, changed, err := uc.repo.TransitionEntry(ctx, barberID, entryID, domain.Transition{
		From:        domain.StatusWaiting,
		To:          domain.StatusCancelled,
		CancelledAt: &now,
	})
	record("cancel", err)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	if !changed {
		if entry.Status == string(domain.StatusCancelled) {
			return entry, nil
		}
		return nil, domain.CanCancel(domain.Status(entry.Status))
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_cancelled", entry.ID, nil)
	publish(ctx, uc.pub, barberID)
	return entry, nil
}
