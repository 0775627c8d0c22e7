package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// location is the barbershop timezone of the barber.
func location(ctx context.Context, barbers barber.Repository, barberID uint) (*time.Location, error) {
	u, err := barbers.GetBarber(ctx, barberID)
	if errors.Is(err, barber.ErrBarberNotFound) {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	if err != nil {
		return nil, err
	}
	return timezone.Location(u.Barbershop.Timezone), nil
}

func mapAppointmentErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("appointment_not_found")
	}
	return err
}

func publish(ctx context.Context, pub live.Publisher, barberID uint) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, barberID); err != nil {
		slog.Warn("queue change not published", "barber_id", barberID, "error", err)
	}
}

func dispatch(d *audit.Dispatcher, barberID uint, actorID *uint, action, id string, meta any) {
	d.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: id,
		Metadata: meta,
	})
}
