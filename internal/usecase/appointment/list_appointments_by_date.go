package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
)

type ListAppointmentsByDate struct {
	repo    appointment.Repository
	barbers barber.Repository
}

func NewListAppointmentsByDate(
	repo appointment.Repository,
	barbers barber.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:    repo,
		barbers: barbers,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	loc, err := location(ctx, uc.barbers, barberID)
	if err != nil {
		return nil, err
	}

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.AddDate(0, 0, 1)

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
