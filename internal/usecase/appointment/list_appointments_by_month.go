package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo    appointment.Repository
	barbers barber.Repository
}

func NewListAppointmentsByMonth(
	repo appointment.Repository,
	barbers barber.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:    repo,
		barbers: barbers,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	loc, err := location(ctx, uc.barbers, barberID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
