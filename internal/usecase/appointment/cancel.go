package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// CancelAppointment cancels one appointment. Other weeks of the same series
// are untouched.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	Now func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		Now:   time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barberID uint,
	actorID *uint,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, barberID, appointmentID)
	if err != nil {
		return nil, mapAppointmentErr(err)
	}

	if err := domain.Cancel(ap, uc.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, mapAppointmentErr(err)
	}

	dispatch(uc.audit, barberID, actorID, "appointment_cancelled", ap.ID, nil)

	return ap, nil
}
