package status

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// SET
// ======================================================

type SetStatus struct {
	repo  barber.Repository
	audit *audit.Dispatcher
	pub   live.Publisher

	Now func() time.Time
}

func NewSetStatus(repo barber.Repository, audit *audit.Dispatcher, pub live.Publisher) *SetStatus {
	return &SetStatus{repo: repo, audit: audit, pub: pub, Now: time.Now}
}

// Execute changes the barber status. breakMinutes is only read for
// on_break; nil means a break with no end time.
func (uc *SetStatus) Execute(ctx context.Context, barberID uint, status string, breakMinutes *int) (*models.BarberStatus, error) {
	next, err := barber.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	st, err := uc.repo.GetStatus(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = barber.Available(barberID)
	}

	switch next {
	case barber.StatusOnBreak:
		if err := barber.StartBreak(st, breakMinutes, uc.Now()); err != nil {
			return nil, err
		}
	default:
		barber.EndBreak(st)
	}

	if err := uc.repo.SaveStatus(ctx, st); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   "status_" + string(next),
		Entity:   "barber_status",
		Metadata: map[string]any{"minutes": breakMinutes},
	})
	if uc.pub != nil {
		if err := uc.pub.Publish(ctx, barberID); err != nil {
			slog.Warn("status change not published", "barber_id", barberID, "error", err)
		}
	}
	return st, nil
}

// ======================================================
// GET
// ======================================================

type GetStatus struct {
	repo barber.Repository
}

func NewGetStatus(repo barber.Repository) *GetStatus {
	return &GetStatus{repo: repo}
}

func (uc *GetStatus) Execute(ctx context.Context, barberID uint) (*models.BarberStatus, error) {
	st, err := uc.repo.GetStatus(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return barber.Available(barberID), nil
	}
	return st, nil
}

// ======================================================
// EXPIRE (cron)
// ======================================================

// ExpireBreaks flips finished determinate breaks back to available.
type ExpireBreaks struct {
	repo barber.Repository
	pub  live.Publisher

	Now func() time.Time
}

func NewExpireBreaks(repo barber.Repository, pub live.Publisher) *ExpireBreaks {
	return &ExpireBreaks{repo: repo, pub: pub, Now: time.Now}
}

func (uc *ExpireBreaks) Execute(ctx context.Context) (int, error) {
	expired, err := uc.repo.ListExpiredBreaks(ctx, uc.Now())
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range expired {
		st := &expired[i]
		barber.EndBreak(st)
		if err := uc.repo.SaveStatus(ctx, st); err != nil {
			slog.Warn("break expiry failed", "barber_id", st.BarberID, "error", err)
			continue
		}
		n++
		if uc.pub != nil {
			_ = uc.pub.Publish(ctx, st.BarberID)
		}
	}
	return n, nil
}
