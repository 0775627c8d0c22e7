package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

func TestMoveSwapsNeighbours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "Ana", "11999990001", f.corte.ID)
	b := f.join(t, "Bruno", "11999990002", f.corte.ID)
	c := f.join(t, "Caio", "11999990003", f.corte.ID)

	list, err := f.move.Execute(ctx, barberID, nil, c.ID, domain.DirectionUp)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, f.waitingIDs(t))

	// b was above c; moving it back up restores the original order
	_, err = f.move.Execute(ctx, barberID, nil, b.ID, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, f.waitingIDs(t))
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.join(t, "Ana", "11999990001", f.corte.ID)
	b := f.join(t, "Bruno", "11999990002", f.corte.ID)
	before, err := f.store.ListWaiting(ctx, barberID)
	require.NoError(t, err)

	_, err = f.move.Execute(ctx, barberID, nil, a.ID, domain.DirectionUp)
	require.NoError(t, err)
	_, err = f.move.Execute(ctx, barberID, nil, b.ID, domain.DirectionDown)
	require.NoError(t, err)

	after, err := f.store.ListWaiting(ctx, barberID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMoveOrdersStayUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ids := []string{
		f.join(t, "A", "11999990001", f.corte.ID).ID,
		f.join(t, "B", "11999990002", f.corte.ID).ID,
		f.join(t, "C", "11999990003", f.corte.ID).ID,
		f.join(t, "D", "11999990004", f.corte.ID).ID,
	}

	steps := []struct {
		id  string
		dir domain.Direction
	}{
		{ids[3], domain.DirectionUp},
		{ids[3], domain.DirectionUp},
		{ids[0], domain.DirectionDown},
		{ids[2], domain.DirectionUp},
		{ids[1], domain.DirectionDown},
	}
	for _, s := range steps {
		_, err := f.move.Execute(ctx, barberID, nil, s.id, s.dir)
		require.NoError(t, err)
	}

	list, err := f.store.ListWaiting(ctx, barberID)
	require.NoError(t, err)
	seen := map[int64]bool{}
	for _, e := range list {
		require.NotNil(t, e.Order)
		assert.False(t, seen[*e.Order], "duplicate order %d", *e.Order)
		seen[*e.Order] = true
	}
}

func TestMoveUnknownEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.move.Execute(context.Background(), barberID, nil, "missing", domain.DirectionUp)
	assert.True(t, httperr.IsBusiness(err, "entry_not_found"))
}
