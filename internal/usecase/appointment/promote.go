package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const maxOrderAttempts = 3

type PromoteResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Entry       *models.QueueEntry  `json:"entry"`
}

// PromoteAppointment sends a scheduled appointment to the end of the live
// queue. It works once per appointment.
type PromoteAppointment struct {
	repo  domain.Repository
	queue queue.Repository
	audit *audit.Dispatcher
	pub   live.Publisher

	Now func() time.Time
}

func NewPromoteAppointment(
	repo domain.Repository,
	queueRepo queue.Repository,
	audit *audit.Dispatcher,
	pub live.Publisher,
) *PromoteAppointment {
	return &PromoteAppointment{
		repo:  repo,
		queue: queueRepo,
		audit: audit,
		pub:   pub,
		Now:   time.Now,
	}
}

func (uc *PromoteAppointment) Execute(
	ctx context.Context,
	barberID uint,
	actorID *uint,
	appointmentID string,
) (*PromoteResult, error) {

	ap, err := uc.repo.GetAppointment(ctx, barberID, appointmentID)
	if err != nil {
		return nil, mapAppointmentErr(err)
	}
	if err := domain.CanPromote(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.Now()
	var (
		entry   *models.QueueEntry
		updated *models.Appointment
	)

	for attempt := 0; attempt < maxOrderAttempts; attempt++ {
		max, err := uc.queue.MaxOrder(ctx, barberID)
		if err != nil {
			return nil, err
		}

		entry = domain.ToQueueEntry(ap, uuid.NewString(), queue.NextOrder(max), now)

		// a troca de status e a criação do ticket são uma transação só
		updated, err = uc.repo.PromoteToQueue(ctx, barberID, ap.ID, entry, now)
		if err == nil {
			break
		}
		if !errors.Is(err, queue.ErrOrderConflict) {
			return nil, mapAppointmentErr(err)
		}
		metrics.OrderConflicts.Inc()
	}
	if updated == nil {
		return nil, httperr.ErrConflict("order_conflict")
	}

	metrics.EntriesEnqueued.WithLabelValues("appointment").Inc()

	dispatch(uc.audit, barberID, actorID, "appointment_moved_to_queue", ap.ID, map[string]any{
		"entry_id": entry.ID,
	})
	publish(ctx, uc.pub, barberID)

	return &PromoteResult{Appointment: updated, Entry: entry}, nil
}
