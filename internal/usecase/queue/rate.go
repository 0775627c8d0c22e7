package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Rate stores the client's 1-5 rating of a finished service. A new rating
// replaces the old one.
type Rate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRate(repo domain.Repository, audit *audit.Dispatcher) *Rate {
	return &Rate{repo: repo, audit: audit}
}

func (uc *Rate) Execute(ctx context.Context, barberID uint, entryID string, stars int) (*models.QueueEntry, error) {
	if err := domain.ValidateRating(stars); err != nil {
		return nil, err
	}

	entry, err := uc.repo.SetRating(ctx, barberID, entryID, stars)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	dispatch(uc.audit, barberID, nil, "queue_entry_rated", entry.ID, map[string]any{"stars": stars})
	return entry, nil
}
