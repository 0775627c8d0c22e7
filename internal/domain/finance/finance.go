package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Category string

const (
	CategoryGeneral        Category = "general"
	CategorySupplies       Category = "supplies"
	CategoryProducts       Category = "products"
	CategoryInfrastructure Category = "infrastructure"
	CategoryMarketing      Category = "marketing"
)

var ErrExpenseNotFound = errors.New("expense not found")

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryGeneral, nil
	case CategoryGeneral, CategorySupplies, CategoryProducts, CategoryInfrastructure, CategoryMarketing:
		return c, nil
	}
	return "", httperr.ErrValidation("invalid_category")
}

func ValidateExpense(e *models.Expense) error {
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		return httperr.ErrValidation("description_required")
	}
	if !e.Amount.GreaterThan(decimal.Zero) {
		return httperr.ErrValidation("invalid_amount")
	}
	return nil
}

// Goals are the barber's revenue targets and monthly fixed costs.
type Goals struct {
	DailyGoal   decimal.Decimal `json:"daily_goal"`
	MonthlyGoal decimal.Decimal `json:"monthly_goal"`
	FixedCosts  decimal.Decimal `json:"fixed_costs"`
}

func (g Goals) Validate() error {
	for _, v := range []decimal.Decimal{g.DailyGoal, g.MonthlyGoal, g.FixedCosts} {
		if v.LessThan(decimal.Zero) {
			return httperr.ErrValidation("invalid_amount")
		}
	}
	return nil
}

func GoalsOf(u *models.User) Goals {
	return Goals{DailyGoal: u.DailyGoal, MonthlyGoal: u.MonthlyGoal, FixedCosts: u.FixedCosts}
}

type Repository interface {
	CreateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, barberID, id uint) error
	// ListExpenses returns expenses created in [from, to).
	ListExpenses(ctx context.Context, barberID uint, from, to time.Time) ([]models.Expense, error)

	GetGoals(ctx context.Context, barberID uint) (Goals, error)
	SaveGoals(ctx context.Context, barberID uint, g Goals) error
}
