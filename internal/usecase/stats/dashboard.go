package stats

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/domain/stats"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// Dashboard runs the statistics aggregator over the barber's history, in
// the barbershop timezone.
type Dashboard struct {
	history queue.Repository
	finance finance.Repository
	barbers barber.Repository

	Now func() time.Time
}

func NewDashboard(history queue.Repository, fin finance.Repository, barbers barber.Repository) *Dashboard {
	return &Dashboard{history: history, finance: fin, barbers: barbers, Now: time.Now}
}

func (uc *Dashboard) Execute(ctx context.Context, barberID uint) (*stats.Dashboard, error) {
	u, err := uc.barbers.GetBarber(ctx, barberID)
	if errors.Is(err, barber.ErrBarberNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if err != nil {
		return nil, err
	}
	now := uc.Now().In(timezone.Location(u.Barbershop.Timezone))

	// histórico completo: a coorte novo/recorrente olha a vida toda do cliente
	entries, err := uc.history.ListCompleted(ctx, barberID, time.Time{})
	if err != nil {
		return nil, err
	}

	monthStart := timezone.StartOfMonth(now)
	expenses, err := uc.finance.ListExpenses(ctx, barberID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	d := stats.Compute(stats.Input{
		Entries:  entries,
		Expenses: expenses,
		Goals:    finance.GoalsOf(u),
		Now:      now,
	})
	return &d, nil
}
