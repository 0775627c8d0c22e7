package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func seedBarber(t *testing.T, s *memstore.Store) uint {
	t.Helper()
	u := &models.User{Name: "Zé", Email: "ze@test.com"}
	require.NoError(t, s.CreateBarber(context.Background(), &models.Barbershop{Name: "Zé", Slug: "ze", Timezone: "UTC"}, u))
	return u.ID
}

func TestExpenses(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	id := seedBarber(t, s)

	uc := NewExpenses(s, s, nil)
	uc.Now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	e, err := uc.Create(ctx, id, ExpenseInput{Description: "Aluguel", Amount: decimal.NewFromInt(800), Category: "infrastructure"})
	require.NoError(t, err)
	assert.Equal(t, "infrastructure", e.Category)

	_, err = uc.Create(ctx, id, ExpenseInput{Description: "", Amount: decimal.NewFromInt(1)})
	assert.True(t, httperr.IsBusiness(err, "description_required"))

	_, err = uc.Create(ctx, id, ExpenseInput{Description: "x", Amount: decimal.Zero})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	list, err := uc.ListMonth(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, id, e.ID))
	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, id, e.ID), "expense_not_found"))
}

func TestGoals(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	id := seedBarber(t, s)
	uc := NewGoals(s, nil)

	_, err := uc.Save(ctx, id, finance.Goals{DailyGoal: decimal.NewFromInt(-1)})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = uc.Save(ctx, id, finance.Goals{DailyGoal: decimal.NewFromInt(300), FixedCosts: decimal.NewFromInt(1200)})
	require.NoError(t, err)

	g, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "300", g.DailyGoal.String())
	assert.Equal(t, "1200", g.FixedCosts.String())

	_, err = uc.Get(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}
