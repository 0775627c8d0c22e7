package live

import (
	"sync"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

// Subscription holds at most one pending snapshot. A newer snapshot replaces
// an undelivered one, so slow readers always catch up to the latest state.
type Subscription struct {
	id       string
	barberID uint
	ch       chan Snapshot
	hub      *Hub

	sendMu sync.Mutex
	once   sync.Once
}

// C is closed after Cancel.
func (s *Subscription) C() <-chan Snapshot {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// deliver runs before registration or under the hub's read lock, so the
// channel is never closed underneath it.
func (s *Subscription) deliver(snap Snapshot) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case s.ch <- snap:
		return
	default:
	}

	select {
	case <-s.ch:
		metrics.LiveDropped.Inc()
	default:
	}

	select {
	case s.ch <- snap:
	default:
	}
}
