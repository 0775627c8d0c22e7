package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ErrAccessDenied is terminal for a subscription.
var ErrAccessDenied = errors.New("live: access denied")

// Snapshot is the full, sorted waiting list of one barber.
type Snapshot struct {
	BarberID uint                 `json:"barber_id"`
	Entries  []models.QueueEntry  `json:"entries"`
	Status   *models.BarberStatus `json:"status"`
	At       time.Time            `json:"at"`
}

// Loader reads the current snapshot from the store.
type Loader func(ctx context.Context, barberID uint) (Snapshot, error)

// Observer is told about every snapshot the hub loads.
type Observer interface {
	Observe(ctx context.Context, snap Snapshot)
}

type Hub struct {
	load      Loader
	observers []Observer

	mu   sync.RWMutex
	subs map[uint]map[string]*Subscription

	// one per barber: a barber's subscribers never see an older load after a
	// newer one, and barbers never wait on each other
	locksMu sync.Mutex
	locks   map[uint]*sync.Mutex
}

func NewHub(load Loader, observers ...Observer) *Hub {
	return &Hub{
		load:      load,
		observers: observers,
		subs:      make(map[uint]map[string]*Subscription),
		locks:     make(map[uint]*sync.Mutex),
	}
}

func (h *Hub) barberLock(barberID uint) *sync.Mutex {
	h.locksMu.Lock()
	defer h.locksMu.Unlock()

	l, ok := h.locks[barberID]
	if !ok {
		l = &sync.Mutex{}
		h.locks[barberID] = l
	}
	return l
}

// Subscribe registers a subscriber for barberID and delivers the current
// snapshot before returning. Call Cancel when done.
func (h *Hub) Subscribe(ctx context.Context, barberID uint) (*Subscription, error) {
	l := h.barberLock(barberID)
	l.Lock()
	defer l.Unlock()

	snap, err := h.load(ctx, barberID)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		id:       uuid.NewString(),
		barberID: barberID,
		ch:       make(chan Snapshot, 1),
		hub:      h,
	}

	sub.deliver(snap)

	h.mu.Lock()
	if h.subs[barberID] == nil {
		h.subs[barberID] = make(map[string]*Subscription)
	}
	h.subs[barberID][sub.id] = sub
	h.mu.Unlock()

	metrics.LiveSubscribers.Inc()
	return sub, nil
}

// Refresh reloads the barber's snapshot and pushes it to every subscriber.
// A failed load is logged and subscribers keep their last snapshot.
func (h *Hub) Refresh(ctx context.Context, barberID uint) {
	l := h.barberLock(barberID)
	l.Lock()
	defer l.Unlock()

	snap, err := h.load(ctx, barberID)
	if err != nil {
		slog.Warn("live refresh failed", "barber_id", barberID, "error", err)
		return
	}

	h.mu.RLock()
	for _, sub := range h.subs[barberID] {
		sub.deliver(snap)
	}
	h.mu.RUnlock()

	for _, o := range h.observers {
		o.Observe(ctx, snap)
	}
}

func (h *Hub) SubscriberCount(barberID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[barberID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subs[sub.barberID]; ok {
		if _, ok := subs[sub.id]; !ok {
			return
		}
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(h.subs, sub.barberID)
		}
	}
	close(sub.ch)
	metrics.LiveSubscribers.Dec()
}
