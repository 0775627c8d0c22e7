package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (s *recordingSink) WriteAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, *log)
	return nil
}

func TestDispatcherWritesQueuedEventsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	d.Dispatch(Event{BarberID: 1, Action: "entry_completed", Entity: "queue_entry", EntityID: "e-1", Metadata: map[string]any{"payment_method": "pix"}})
	d.Dispatch(Event{BarberID: 1, Action: "entry_cancelled", Entity: "queue_entry", EntityID: "e-2"})
	d.Close()

	require.Len(t, sink.logs, 2)
	assert.Equal(t, "entry_completed", sink.logs[0].Action)
	assert.Equal(t, `{"payment_method":"pix"}`, sink.logs[0].Metadata)
	assert.Equal(t, "e-2", sink.logs[1].EntityID)
	assert.Empty(t, sink.logs[1].Metadata)
}

func TestDispatchAfterCloseIsIgnored(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)
	d.Close()
	d.Close()

	d.Dispatch(Event{Action: "late"})

	assert.Empty(t, sink.logs)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}
