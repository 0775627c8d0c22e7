package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type fixture struct {
	store    *memstore.Store
	barberID uint
	service  *models.Service

	create  *CreateAppointment
	cancel  *CancelAppointment
	promote *PromoteAppointment
	byDate  *ListAppointmentsByDate
	byMonth *ListAppointmentsByMonth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	shop := &models.Barbershop{Name: "Barbearia do Zé", Slug: "barbearia-do-ze", Timezone: "America/Sao_Paulo"}
	user := &models.User{Name: "Zé", Email: "ze@test.com"}
	require.NoError(t, store.CreateBarber(ctx, shop, user))

	svc := &models.Service{
		BarberID:    user.ID,
		Name:        "Corte",
		DurationMin: 30,
		Price:       decimal.NewFromInt(40),
		Active:      true,
		Materials:   models.Materials{{ProductID: 3, Name: "Pomada", Quantity: 1}},
	}
	require.NoError(t, store.CreateService(ctx, svc))

	now := func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

	f := &fixture{
		store:    store,
		barberID: user.ID,
		service:  svc,
		create:   NewCreateAppointment(store, store, store, nil),
		cancel:   NewCancelAppointment(store, nil),
		promote:  NewPromoteAppointment(store, store, nil, nil),
		byDate:   NewListAppointmentsByDate(store, store),
		byMonth:  NewListAppointmentsByMonth(store, store),
	}
	f.cancel.Now = now
	f.promote.Now = now
	return f
}

func (f *fixture) input(date string, count int) CreateAppointmentInput {
	return CreateAppointmentInput{
		BarberID:        f.barberID,
		Name:            "Ana",
		Phone:           "11999990001",
		ServiceID:       f.service.ID,
		Date:            date,
		Time:            "10:30",
		RecurrenceCount: count,
	}
}

func TestRecurrenceExpansion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.create.Execute(ctx, f.input("2024-01-01", 4))
	require.NoError(t, err)
	require.Len(t, res.Appointments, 4)
	assert.Equal(t, res.Appointments[0].ID, res.ID)

	want := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}
	for i, ap := range res.Appointments {
		assert.Equal(t, want[i], ap.ScheduledDate.Format("2006-01-02"))
		assert.Equal(t, 0, ap.ScheduledDate.Hour(), "local midnight")
		assert.Equal(t, "scheduled", ap.Status)
		assert.Equal(t, res.Appointments[0].RecurrenceGroup, ap.RecurrenceGroup)
		assert.NotEmpty(t, ap.RecurrenceGroup)
	}

	month, err := f.byMonth.Execute(ctx, f.barberID, 2024, 1)
	require.NoError(t, err)
	assert.Len(t, month, 4)
}

func TestCancelOneWeekKeepsOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.create.Execute(ctx, f.input("2024-01-01", 4))
	require.NoError(t, err)

	second := res.Appointments[1].ID
	got, err := f.cancel.Execute(ctx, f.barberID, nil, second)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)

	for _, ap := range res.Appointments {
		stored, err := f.store.GetAppointment(ctx, f.barberID, ap.ID)
		require.NoError(t, err)
		if ap.ID == second {
			assert.Equal(t, "cancelled", stored.Status)
		} else {
			assert.Equal(t, "scheduled", stored.Status)
		}
	}

	_, err = f.cancel.Execute(ctx, f.barberID, nil, second)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestSingleAppointmentHasNoGroup(t *testing.T) {
	f := newFixture(t)

	res, err := f.create.Execute(context.Background(), f.input("2024-01-10", 0))
	require.NoError(t, err)
	require.Len(t, res.Appointments, 1)
	assert.Empty(t, res.Appointments[0].RecurrenceGroup)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := f.input("2024-13-40", 1)
	_, err := f.create.Execute(ctx, bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	bad = f.input("2024-01-01", 1)
	bad.Time = "25:99"
	_, err = f.create.Execute(ctx, bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	bad = f.input("2024-01-01", 53)
	_, err = f.create.Execute(ctx, bad)
	assert.True(t, httperr.IsBusiness(err, "invalid_recurrence"))

	bad = f.input("2024-01-01", 1)
	bad.ServiceID = 0
	_, err = f.create.Execute(ctx, bad)
	assert.True(t, httperr.IsBusiness(err, "service_required"))
}

func TestPromoteIsOneShot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.create.Execute(ctx, f.input("2024-01-01", 1))
	require.NoError(t, err)

	out, err := f.promote.Execute(ctx, f.barberID, nil, res.ID)
	require.NoError(t, err)

	assert.Equal(t, "moved_to_queue", out.Appointment.Status)
	require.NotNil(t, out.Appointment.MovedAt)
	require.NotNil(t, out.Appointment.QueueEntryID)
	assert.Equal(t, out.Entry.ID, *out.Appointment.QueueEntryID)

	assert.Equal(t, "waiting", out.Entry.Status)
	assert.Equal(t, "Corte", out.Entry.ServiceName)
	require.Len(t, out.Entry.Materials, 1)
	assert.Equal(t, uint(3), out.Entry.Materials[0].ProductID)
	require.NotNil(t, out.Entry.Order)
	assert.Equal(t, int64(1), *out.Entry.Order)

	_, err = f.promote.Execute(ctx, f.barberID, nil, res.ID)
	assert.True(t, httperr.IsBusiness(err, "already_moved"))
	assert.Equal(t, httperr.KindPrecondition, httperr.KindOf(err))

	waiting, err := f.store.ListWaiting(ctx, f.barberID)
	require.NoError(t, err)
	assert.Len(t, waiting, 1)
}

func TestPromoteCancelledAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.create.Execute(ctx, f.input("2024-01-01", 1))
	require.NoError(t, err)
	_, err = f.cancel.Execute(ctx, f.barberID, nil, res.ID)
	require.NoError(t, err)

	_, err = f.promote.Execute(ctx, f.barberID, nil, res.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestListByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.input("2024-01-01", 2))
	require.NoError(t, err)

	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	list, err := f.byDate.Execute(ctx, f.barberID, day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "10:30", list[0].ScheduledTime)

	_, err = f.byDate.Execute(ctx, 999, day)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel.Execute(context.Background(), f.barberID, nil, "nope")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
