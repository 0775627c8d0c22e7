package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	shop := &models.Barbershop{Name: "Zé", Slug: "ze", Timezone: "America/Sao_Paulo"}
	user := &models.User{Name: "Zé", Email: "ze@test.com"}
	require.NoError(t, s.CreateBarber(ctx, shop, user))
	require.NoError(t, s.SaveGoals(ctx, user.ID, finance.Goals{
		DailyGoal:   decimal.NewFromInt(200),
		MonthlyGoal: decimal.NewFromInt(1000),
		FixedCosts:  decimal.NewFromInt(30),
	}))

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, loc)

	add := func(id string, at time.Time, price int64, pm string) {
		ts := at
		require.NoError(t, s.CreateEntry(ctx, &models.QueueEntry{
			ID: id, BarberID: user.ID, Name: "X", Phone: "11999990001",
			ServiceName: "Corte", ServicePrice: decimal.NewFromInt(price),
			Status: "done", PaymentMethod: pm, JoinedAt: at, CompletedAt: &ts,
		}))
	}
	add("a", now.Add(-time.Hour), 40, "pix")
	add("b", now.AddDate(0, 0, -10), 60, "money")

	require.NoError(t, s.CreateExpense(ctx, &models.Expense{
		BarberID: user.ID, Description: "Luz", Amount: decimal.NewFromInt(20), Category: "infrastructure",
		CreatedAt: now.AddDate(0, 0, -2),
	}))
	require.NoError(t, s.CreateExpense(ctx, &models.Expense{
		BarberID: user.ID, Description: "Mês passado", Amount: decimal.NewFromInt(500),
		CreatedAt: now.AddDate(0, -1, 0),
	}))

	uc := NewDashboard(s, s, s)
	uc.Now = func() time.Time { return now }

	d, err := uc.Execute(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "40", d.Today.Revenue.String())
	assert.Equal(t, "100", d.Month.Revenue.String())
	assert.Equal(t, 2, d.Month.Clients)
	assert.Equal(t, 1, d.NewClients)
	assert.Equal(t, 1, d.RecurringClients)
	assert.Equal(t, "20", d.Expenses.Total.String())
	assert.Equal(t, 20.0, d.Goals.DailyPercent)
	assert.Equal(t, 10.0, d.Goals.MonthlyPercent)
	assert.Equal(t, "50", d.Goals.NetProfit.String())
	assert.Len(t, d.DailyRevenue, 7)
}

func TestDashboardUnknownBarber(t *testing.T) {
	_, err := NewDashboard(memstore.New(), memstore.New(), memstore.New()).Execute(context.Background(), 42)
	assert.Error(t, err)
}
