package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Move struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	pub   live.Publisher
}

func NewMove(repo domain.Repository, audit *audit.Dispatcher, pub live.Publisher) *Move {
	return &Move{repo: repo, audit: audit, pub: pub}
}

// Execute swaps the entry with its neighbour and returns the new waiting
// list. Moving past either end changes nothing and is not an error.
func (uc *Move) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string, dir domain.Direction) ([]models.QueueEntry, error) {
	list, err := uc.repo.ListWaiting(ctx, barberID)
	if err != nil {
		return nil, err
	}

	if domain.Position(list, entryID) == 0 {
		if _, err := uc.repo.GetEntry(ctx, barberID, entryID); err != nil {
			return nil, mapEntryErr(err)
		}
		// existe mas não está esperando
		return list, nil
	}

	plan, ok := domain.PlanMove(list, entryID, dir)
	if !ok {
		return list, nil
	}

	// troca atômica: as duas escritas entram juntas ou nenhuma
	err = uc.repo.ApplyOrders(ctx, barberID, plan)
	record("move", err)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_moved", entryID, map[string]any{
		"direction": dir,
	})
	publish(ctx, uc.pub, barberID)

	return uc.repo.ListWaiting(ctx, barberID)
}
