package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	// CreateAppointments stores a whole recurrence series or nothing.
	CreateAppointments(
		ctx context.Context,
		aps []models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		barberID uint,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// PromoteToQueue marks a scheduled appointment as moved and inserts
	// entry in the same transaction. It fails with a precondition error when
	// the appointment is no longer scheduled.
	PromoteToQueue(
		ctx context.Context,
		barberID uint,
		id string,
		entry *models.QueueEntry,
		movedAt time.Time,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
