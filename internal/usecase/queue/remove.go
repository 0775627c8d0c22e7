package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/live"
)

// Remove purges an entry in any status. It is not a cancellation.
type Remove struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	pub   live.Publisher
}

func NewRemove(repo domain.Repository, audit *audit.Dispatcher, pub live.Publisher) *Remove {
	return &Remove{repo: repo, audit: audit, pub: pub}
}

func (uc *Remove) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string) error {
	err := uc.repo.DeleteEntry(ctx, barberID, entryID)
	record("remove", err)
	if err != nil {
		return mapEntryErr(err)
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_removed", entryID, nil)
	publish(ctx, uc.pub, barberID)
	return nil
}
