package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type captureNotifier struct {
	alerts []Alert
}

func (c *captureNotifier) Notify(_ context.Context, a Alert) error {
	c.alerts = append(c.alerts, a)
	return nil
}

func snapshot(barberID uint, ids ...string) live.Snapshot {
	entries := make([]models.QueueEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, models.QueueEntry{ID: id, Name: "Cliente " + id, Phone: "11999990000"})
	}
	return live.Snapshot{BarberID: barberID, Entries: entries}
}

func TestHeadWatcherAlertsOnNewHead(t *testing.T) {
	n := &captureNotifier{}
	w := NewHeadWatcher(n)
	ctx := context.Background()

	w.Observe(ctx, snapshot(1, "a", "b"))
	assert.Empty(t, n.alerts, "first snapshot only primes the watcher")

	w.Observe(ctx, snapshot(1, "a", "b", "c"))
	assert.Empty(t, n.alerts, "same head")

	w.Observe(ctx, snapshot(1, "b", "c"))
	require.Len(t, n.alerts, 1)
	assert.Equal(t, "b", n.alerts[0].EntryID)
	assert.Contains(t, n.alerts[0].Body, "Cliente")

	w.Observe(ctx, snapshot(1))
	w.Observe(ctx, snapshot(1, "d"))
	require.Len(t, n.alerts, 2)
	assert.Equal(t, "d", n.alerts[1].EntryID)
}

func TestHeadWatcherTracksBarbersSeparately(t *testing.T) {
	n := &captureNotifier{}
	w := NewHeadWatcher(n)
	ctx := context.Background()

	w.Observe(ctx, snapshot(1, "a"))
	w.Observe(ctx, snapshot(2, "x"))
	w.Observe(ctx, snapshot(2, "y"))

	require.Len(t, n.alerts, 1)
	assert.Equal(t, uint(2), n.alerts[0].BarberID)
}
