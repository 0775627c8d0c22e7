package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const MaxRecurrence = 52

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// ExpandWeekly returns count copies of first, one per calendar week. Dates
// move with AddDate so local midnight survives DST changes.
func ExpandWeekly(first models.Appointment, count int) ([]models.Appointment, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxRecurrence {
		return nil, httperr.ErrValidation("invalid_recurrence")
	}

	out := make([]models.Appointment, 0, count)
	for i := 0; i < count; i++ {
		ap := first
		ap.ScheduledDate = first.ScheduledDate.AddDate(0, 0, 7*i)
		ap.Materials = first.Materials.Clone()
		out = append(out, ap)
	}
	return out, nil
}

// ToQueueEntry builds the ticket a promotion creates. The service snapshot
// and materials travel unchanged.
func ToQueueEntry(ap *models.Appointment, id string, order int64, now time.Time) *models.QueueEntry {
	apID := ap.ID
	o := order
	return &models.QueueEntry{
		ID:              id,
		BarberID:        ap.BarberID,
		Name:            ap.Name,
		Phone:           ap.Phone,
		ServiceName:     ap.ServiceName,
		ServiceDuration: ap.ServiceDuration,
		ServicePrice:    ap.ServicePrice,
		Materials:       ap.Materials.Clone(),
		Notes:           ap.Notes,
		Status:          string(queue.InitialStatus()),
		Order:           &o,
		JoinedAt:        now,
		AppointmentID:   &apID,
	}
}
