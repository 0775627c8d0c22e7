package queue

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/payments"
)

type PixCharge struct {
	repo    domain.Repository
	charger payments.PixCharger
	audit   *audit.Dispatcher
}

// NewPixCharge accepts a nil charger when payments are not configured.
func NewPixCharge(repo domain.Repository, charger payments.PixCharger, audit *audit.Dispatcher) *PixCharge {
	return &PixCharge{repo: repo, charger: charger, audit: audit}
}

func (uc *PixCharge) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string) (*payments.PixCharge, error) {
	if uc.charger == nil {
		return nil, httperr.ErrPrecondition("payments_disabled")
	}

	entry, err := uc.repo.GetEntry(ctx, barberID, entryID)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	if entry.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrPrecondition("invalid_state")
	}
	if !entry.ServicePrice.IsPositive() {
		return nil, httperr.ErrValidation("nothing_to_charge")
	}

	charge, err := uc.charger.CreatePix(ctx, payments.PixRequest{
		Amount:            entry.ServicePrice,
		Description:       fmt.Sprintf("%s - %s", entry.ServiceName, entry.Name),
		ExternalReference: entry.ID,
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_pix_charge", entry.ID, map[string]any{
		"payment_id": charge.PaymentID,
		"amount":     charge.Amount.String(),
	})
	return charge, nil
}
