package queue

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type ListWaiting struct {
	repo    domain.Repository
	barbers barber.Repository

	Now func() time.Time
}

func NewListWaiting(repo domain.Repository, barbers barber.Repository) *ListWaiting {
	return &ListWaiting{repo: repo, barbers: barbers, Now: time.Now}
}

func (uc *ListWaiting) Execute(ctx context.Context, barberID uint) ([]models.QueueEntry, error) {
	return uc.repo.ListWaiting(ctx, barberID)
}

// Snapshot is the loader the live hub uses: the sorted waiting list plus the
// barber status the ETA depends on.
func (uc *ListWaiting) Snapshot(ctx context.Context, barberID uint) (live.Snapshot, error) {
	list, err := uc.repo.ListWaiting(ctx, barberID)
	if err != nil {
		return live.Snapshot{}, err
	}

	st, err := uc.barbers.GetStatus(ctx, barberID)
	if err != nil {
		return live.Snapshot{}, err
	}
	if st == nil {
		st = barber.Available(barberID)
	}

	return live.Snapshot{
		BarberID: barberID,
		Entries:  list,
		Status:   st,
		At:       uc.Now(),
	}, nil
}
