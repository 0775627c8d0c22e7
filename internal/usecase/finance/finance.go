package finance

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// ===============================
// Expenses
// ===============================

type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
}

type Expenses struct {
	repo    finance.Repository
	barbers barber.Repository
	audit   *audit.Dispatcher

	Now func() time.Time
}

func NewExpenses(repo finance.Repository, barbers barber.Repository, audit *audit.Dispatcher) *Expenses {
	return &Expenses{repo: repo, barbers: barbers, audit: audit, Now: time.Now}
}

func (uc *Expenses) Create(ctx context.Context, barberID uint, in ExpenseInput) (*models.Expense, error) {
	cat, err := finance.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	e := &models.Expense{
		BarberID:    barberID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    string(cat),
		CreatedAt:   uc.Now(),
	}
	if err := finance.ValidateExpense(e); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "expense_created",
		Entity:   "expense",
		EntityID: strconv.FormatUint(uint64(e.ID), 10),
	})
	return e, nil
}

func (uc *Expenses) Delete(ctx context.Context, barberID, id uint) error {
	err := uc.repo.DeleteExpense(ctx, barberID, id)
	if errors.Is(err, finance.ErrExpenseNotFound) {
		return httperr.ErrNotFound("expense_not_found")
	}
	return err
}

// ListMonth returns the expenses of the calendar month containing the
// current time in the barbershop timezone.
func (uc *Expenses) ListMonth(ctx context.Context, barberID uint) ([]models.Expense, error) {
	u, err := uc.barbers.GetBarber(ctx, barberID)
	if errors.Is(err, barber.ErrBarberNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if err != nil {
		return nil, err
	}

	start := timezone.StartOfMonth(uc.Now().In(timezone.Location(u.Barbershop.Timezone)))
	return uc.repo.ListExpenses(ctx, barberID, start, start.AddDate(0, 1, 0))
}

// ===============================
// Goals
// ===============================

type Goals struct {
	repo  finance.Repository
	audit *audit.Dispatcher
}

func NewGoals(repo finance.Repository, audit *audit.Dispatcher) *Goals {
	return &Goals{repo: repo, audit: audit}
}

func (uc *Goals) Get(ctx context.Context, barberID uint) (finance.Goals, error) {
	g, err := uc.repo.GetGoals(ctx, barberID)
	if errors.Is(err, barber.ErrBarberNotFound) {
		return g, httperr.ErrNotFound("barber_not_found")
	}
	return g, err
}

func (uc *Goals) Save(ctx context.Context, barberID uint, g finance.Goals) (finance.Goals, error) {
	if err := g.Validate(); err != nil {
		return finance.Goals{}, err
	}
	if err := uc.repo.SaveGoals(ctx, barberID, g); err != nil {
		if errors.Is(err, barber.ErrBarberNotFound) {
			return finance.Goals{}, httperr.ErrNotFound("barber_not_found")
		}
		return finance.Goals{}, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "goals_updated",
		Entity:   "user",
		EntityID: strconv.FormatUint(uint64(barberID), 10),
		Metadata: g,
	})
	return g, nil
}
