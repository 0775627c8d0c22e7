package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID uint
	ActorID  *uint

	Name  string
	Phone string

	ServiceID uint

	Date  string // 2006-01-02
	Time  string // 15:04
	Notes string

	// semanas seguidas; 0 ou 1 = agendamento único
	RecurrenceCount int
}

type CreateAppointmentResult struct {
	// ID of the first appointment of the series
	ID           string               `json:"id"`
	Appointments []models.Appointment `json:"appointments"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	services catalog.Repository
	barbers  barber.Repository
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	services catalog.Repository,
	barbers barber.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		services: services,
		barbers:  barbers,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentResult, error) {

	// --------------------------------------------------
	// 1️⃣ Cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name_required")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !validators.IsPlausiblePhone(phone) {
		return nil, httperr.ErrValidation("invalid_phone")
	}

	// --------------------------------------------------
	// 2️⃣ Data no timezone da barbearia
	// --------------------------------------------------
	loc, err := location(ctx, uc.barbers, in.BarberID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço (cópia, nunca referência)
	// --------------------------------------------------
	snap, err := catalog.Resolve(ctx, uc.services, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Série semanal
	// --------------------------------------------------
	first := models.Appointment{
		BarberID:        in.BarberID,
		Name:            name,
		Phone:           phone,
		ScheduledDate:   day,
		ScheduledTime:   in.Time,
		ServiceName:     snap.Name,
		ServiceDuration: snap.Duration,
		ServicePrice:    snap.Price,
		Materials:       snap.Materials,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          string(domain.InitialStatus()),
	}

	aps, err := domain.ExpandWeekly(first, in.RecurrenceCount)
	if err != nil {
		return nil, err
	}

	group := ""
	if len(aps) > 1 {
		group = uuid.NewString()
	}
	for i := range aps {
		aps[i].ID = uuid.NewString()
		aps[i].RecurrenceGroup = group
	}

	if err := uc.repo.CreateAppointments(ctx, aps); err != nil {
		return nil, err
	}

	dispatch(uc.audit, in.BarberID, in.ActorID, "appointment_created", aps[0].ID, map[string]any{
		"count": len(aps),
		"group": group,
	})

	return &CreateAppointmentResult{ID: aps[0].ID, Appointments: aps}, nil
}
