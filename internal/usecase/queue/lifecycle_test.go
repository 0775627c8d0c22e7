package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/domain/stats"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	x, err := f.enqueue.Execute(ctx, EnqueueInput{BarberID: barberID, Name: "X", Phone: "11999990001", ServiceID: f.corte.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, x.Position)
	require.NotNil(t, x.Entry.Order)

	y, err := f.enqueue.Execute(ctx, EnqueueInput{BarberID: barberID, Name: "Y", Phone: "11999990002", ServiceID: f.corte.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, y.Position)

	res, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, x.Entry.ID, res.Entry.ID)
	assert.Equal(t, "done", res.Entry.Status)
	require.NotNil(t, res.Entry.CompletedAt)
	assert.Equal(t, "pix", res.Entry.PaymentMethod)

	list, err := f.store.ListWaiting(ctx, barberID)
	require.NoError(t, err)
	assert.Equal(t, 1, domain.Position(list, y.Entry.ID))
	assert.Equal(t, *y.Entry.Order, *list[0].Order)

	done, err := f.store.ListCompleted(ctx, barberID, time.Time{})
	require.NoError(t, err)
	d := stats.Compute(stats.Input{Entries: done, Now: f.clock.Now()})
	assert.Equal(t, 1, d.Today.Clients)
	assert.Equal(t, "40", d.Today.Revenue.String())
	assert.Equal(t, 1, d.PaymentMethods["pix"])
}

func TestCompleteEmptyQueue(t *testing.T) {
	f := newFixture(t)

	_, err := f.complete.Execute(context.Background(), CompleteFirstInput{BarberID: barberID, PaymentMethod: "money"})
	assert.True(t, httperr.IsBusiness(err, "queue_empty"))
	assert.Equal(t, httperr.KindPrecondition, httperr.KindOf(err))
}

func TestCompleteInvalidPayment(t *testing.T) {
	f := newFixture(t)
	f.join(t, "Ana", "11999990001", f.corte.ID)

	_, err := f.complete.Execute(context.Background(), CompleteFirstInput{BarberID: barberID, PaymentMethod: "cheque"})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment"))
	assert.Len(t, f.waitingIDs(t), 1)
}

func TestCompleteOnlyTouchesHead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)
	b := f.join(t, "B", "11999990002", f.corte.ID)
	c := f.join(t, "C", "11999990003", f.corte.ID)

	_, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "card"})
	require.NoError(t, err)

	for _, e := range []*models.QueueEntry{b, c} {
		got, err := f.store.GetEntry(ctx, barberID, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "waiting", got.Status)
		assert.Equal(t, *e.Order, *got.Order)
	}
	got, err := f.store.GetEntry(ctx, barberID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", got.Status)
}

func TestCompleteStaleSnapshotIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)
	f.join(t, "B", "11999990002", f.corte.ID)

	first, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, HeadID: a.ID, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.False(t, first.AlreadyDone)

	second, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, HeadID: a.ID, PaymentMethod: "money"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyDone)
	assert.Equal(t, "pix", second.Entry.PaymentMethod)
	assert.Empty(t, second.Effects.Results)

	p, err := f.store.GetProfile(ctx, barberID, "11999990001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.TotalVisits)
	assert.Len(t, f.waitingIDs(t), 1)
}

func TestStockDeductionExactness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	svc := f.serviceWith(t, "Corte + Barba", models.Materials{
		{ProductID: f.pomada.ID, Name: "Pomada", Quantity: 2},
		{ProductID: 9999, Name: "Produto apagado", Quantity: 1},
		{ProductID: f.gel.ID, Name: "Gel", Quantity: 1},
	})
	f.join(t, "Ana", "11999990001", svc.ID)

	res, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Entry.Status)

	failures := res.Effects.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "stock_deduction", failures[0].Name)
	assert.Equal(t, "product:9999", failures[0].Target)

	pomada, err := f.store.GetProduct(ctx, barberID, f.pomada.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, pomada.Quantity)

	gel, err := f.store.GetProduct(ctx, barberID, f.gel.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gel.Quantity)
}

func TestProfileMonotonicAcrossUndo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var last *models.QueueEntry
	for i := 0; i < 3; i++ {
		f.join(t, "Ana", "11 99999-0001", f.corte.ID)
		res, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "money"})
		require.NoError(t, err)
		last = res.Entry
		f.clock.Advance(time.Hour)
	}

	p, err := f.store.GetProfile(ctx, barberID, "11999990001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(3), p.TotalVisits)
	assert.Equal(t, "120", p.TotalSpent.String())
	assert.Equal(t, "Corte", p.LastService)

	_, err = f.undo.Execute(ctx, barberID, nil, last.ID)
	require.NoError(t, err)

	p, err = f.store.GetProfile(ctx, barberID, "11999990001")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.TotalVisits)
}

func TestUndoPutsEntryAtFront(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)
	b := f.join(t, "B", "11999990002", f.corte.ID)
	c := f.join(t, "C", "11999990003", f.corte.ID)

	_, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "pix"})
	require.NoError(t, err)

	got, err := f.undo.Execute(ctx, barberID, nil, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "waiting", got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, f.waitingIDs(t))

	// undo twice is harmless
	_, err = f.undo.Execute(ctx, barberID, nil, a.ID)
	require.NoError(t, err)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)

	got, err := f.cancel.Execute(ctx, barberID, nil, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Empty(t, f.waitingIDs(t))

	p, err := f.store.GetProfile(ctx, barberID, "11999990001")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.TotalVisits)

	_, err = f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, HeadID: a.ID, PaymentMethod: "pix"})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.undo.Execute(ctx, barberID, nil, a.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRateOnlyAfterDone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)

	_, err := f.rate.Execute(ctx, barberID, a.ID, 5)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "pix"})
	require.NoError(t, err)

	_, err = f.rate.Execute(ctx, barberID, a.ID, 6)
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	got, err := f.rate.Execute(ctx, barberID, a.ID, 4)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)

	got, err = f.rate.Execute(ctx, barberID, a.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, *got.Rating)
}

func TestCompleteAppendsPhotoToGallery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "A", "11999990001", f.corte.ID)
	url := "https://cdn.test/a.webp"
	_, err := f.update.Execute(ctx, UpdateInput{BarberID: barberID, EntryID: a.ID, PhotoURL: &url})
	require.NoError(t, err)

	res, err := f.complete.Execute(ctx, CompleteFirstInput{BarberID: barberID, PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.True(t, res.Effects.OK())

	photos, err := f.store.ListPhotos(ctx, barberID, "11999990001")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, url, photos[0].URL)
	assert.Equal(t, a.ID, photos[0].EntryID)
}
