package queue

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/effects"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const barberID uint = 1

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	store *memstore.Store
	clock *clock

	corte  *models.Service
	pomada *models.Product
	gel    *models.Product

	enqueue  *Enqueue
	complete *CompleteFirst
	undo     *UndoComplete
	cancel   *Cancel
	move     *Move
	remove   *Remove
	update   *Update
	rate     *Rate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		store: memstore.New(),
		clock: &clock{now: time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)},
	}

	f.pomada = &models.Product{BarberID: barberID, Name: "Pomada", Quantity: 10, MinQuantity: 5}
	f.gel = &models.Product{BarberID: barberID, Name: "Gel", Quantity: 4, MinQuantity: 5}
	require.NoError(t, f.store.CreateProduct(ctx, f.pomada))
	require.NoError(t, f.store.CreateProduct(ctx, f.gel))

	f.corte = &models.Service{
		BarberID:    barberID,
		Name:        "Corte",
		DurationMin: 30,
		Price:       decimal.NewFromInt(40),
		Active:      true,
	}
	require.NoError(t, f.store.CreateService(ctx, f.corte))

	runner := effects.NewRunner(1, 0)

	f.enqueue = NewEnqueue(f.store, f.store, f.store, runner, nil, nil)
	f.enqueue.Now = f.clock.Now
	f.complete = NewCompleteFirst(f.store, f.store, f.store, runner, nil, nil)
	f.complete.Now = f.clock.Now
	f.undo = NewUndoComplete(f.store, nil, nil)
	f.cancel = NewCancel(f.store, nil, nil)
	f.cancel.Now = f.clock.Now
	f.move = NewMove(f.store, nil, nil)
	f.remove = NewRemove(f.store, nil, nil)
	f.update = NewUpdate(f.store, f.store, nil, nil)
	f.rate = NewRate(f.store, nil)

	return f
}

func (f *fixture) serviceWith(t *testing.T, name string, materials models.Materials) *models.Service {
	t.Helper()
	svc := &models.Service{
		BarberID:    barberID,
		Name:        name,
		DurationMin: 45,
		Price:       decimal.NewFromInt(60),
		Active:      true,
		Materials:   materials,
	}
	require.NoError(t, f.store.CreateService(context.Background(), svc))
	return svc
}

func (f *fixture) join(t *testing.T, name, phone string, serviceID uint) *models.QueueEntry {
	t.Helper()
	res, err := f.enqueue.Execute(context.Background(), EnqueueInput{
		BarberID:  barberID,
		Name:      name,
		Phone:     phone,
		Phoneless: phone == "",
		ServiceID: serviceID,
	})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	return res.Entry
}

func (f *fixture) waitingIDs(t *testing.T) []string {
	t.Helper()
	list, err := f.store.ListWaiting(context.Background(), barberID)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	return ids
}
