package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const queueSize = 100

type Event struct {
	BarberID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	sink  Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		log := &models.AuditLog{
			BarberID:  ev.BarberID,
			UserID:    ev.UserID,
			Action:    ev.Action,
			Entity:    ev.Entity,
			EntityID:  ev.EntityID,
			Metadata:  encodeMetadata(ev.Metadata),
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.WriteAuditLog(ctx, log); err != nil {
			slog.Error("audit write failed", "action", ev.Action, "error", err)
		}
		cancel()
	}
}

// Dispatch never blocks: a full queue drops the event. A nil dispatcher is
// a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		metrics.AuditDropped.Inc()
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
