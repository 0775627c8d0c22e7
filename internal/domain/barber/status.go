package barber

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ===============================
// Barber Status
// ===============================

type Status string

const (
	StatusAvailable Status = "available"
	StatusOnBreak   Status = "on_break"
)

const MaxBreakMinutes = 8 * 60

var (
	ErrBarberNotFound = errors.New("barber not found")
	ErrEmailTaken     = errors.New("email already registered")
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusOnBreak:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

// Available is the status of a barber that never set one.
func Available(barberID uint) *models.BarberStatus {
	return &models.BarberStatus{BarberID: barberID, Status: string(StatusAvailable)}
}

// ===============================
// Domain Actions
// ===============================

// StartBreak puts the barber on break. A nil minutes means no end time.
func StartBreak(st *models.BarberStatus, minutes *int, now time.Time) error {
	if minutes != nil && (*minutes <= 0 || *minutes > MaxBreakMinutes) {
		return httperr.ErrValidation("invalid_break")
	}

	st.Status = string(StatusOnBreak)
	st.BreakStartedAt = &now
	st.BreakDuration = nil
	st.BreakEndsAt = nil

	if minutes != nil {
		m := *minutes
		ends := now.Add(time.Duration(m) * time.Minute)
		st.BreakDuration = &m
		st.BreakEndsAt = &ends
	}
	return nil
}

func EndBreak(st *models.BarberStatus) {
	st.Status = string(StatusAvailable)
	st.BreakStartedAt = nil
	st.BreakDuration = nil
	st.BreakEndsAt = nil
}

// Expired reports a determinate break whose end time has passed.
func Expired(st *models.BarberStatus, now time.Time) bool {
	return st != nil &&
		st.Status == string(StatusOnBreak) &&
		st.BreakEndsAt != nil &&
		!now.Before(*st.BreakEndsAt)
}

// RemainingBreakMinutes is the time left on a determinate break, rounded up
// to the next minute. Indeterminate or finished breaks count as zero.
func RemainingBreakMinutes(st *models.BarberStatus, now time.Time) int {
	if st == nil || st.Status != string(StatusOnBreak) || st.BreakEndsAt == nil {
		return 0
	}
	left := st.BreakEndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Minutes()))
}

// ===============================
// Repository
// ===============================

type Repository interface {
	// GetStatus returns nil when the barber never set a status.
	GetStatus(ctx context.Context, barberID uint) (*models.BarberStatus, error)
	SaveStatus(ctx context.Context, st *models.BarberStatus) error
	ListExpiredBreaks(ctx context.Context, now time.Time) ([]models.BarberStatus, error)

	GetBarber(ctx context.Context, barberID uint) (*models.User, error)
	FindBarberBySlug(ctx context.Context, slug string) (*models.User, error)
	FindBarberByEmail(ctx context.Context, email string) (*models.User, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ListBarberIDs feeds the nightly jobs.
	ListBarberIDs(ctx context.Context) ([]uint, error)

	// CreateBarber stores the shop and its owner together.
	CreateBarber(ctx context.Context, shop *models.Barbershop, user *models.User) error
	SaveBarbershop(ctx context.Context, shop *models.Barbershop) error
}
