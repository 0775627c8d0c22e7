package queue

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var (
	ErrEntryNotFound = errors.New("queue entry not found")
	// ErrOrderConflict means another waiting entry already holds the order key.
	ErrOrderConflict = errors.New("queue order conflict")
)

// Transition is a conditional status change: it applies only while the
// entry is still in From.
type Transition struct {
	From Status
	To   Status

	CompletedAt    *time.Time
	ClearCompleted bool
	CancelledAt    *time.Time
	PaymentMethod  PaymentMethod
	Order          *int64
}

// ServiceSnapshot is copied from the catalog into tickets.
type ServiceSnapshot struct {
	Name      string
	Duration  int
	Price     decimal.Decimal
	Materials models.Materials
}

func SnapshotOf(s *models.Service) ServiceSnapshot {
	return ServiceSnapshot{
		Name:      s.Name,
		Duration:  s.DurationMin,
		Price:     s.Price,
		Materials: s.Materials.Clone(),
	}
}

// EntryPatch updates a waiting entry. Nil fields are left alone.
type EntryPatch struct {
	Name     *string
	Phone    *string
	Service  *ServiceSnapshot
	Notes    *string
	PhotoURL *string
}

func (p EntryPatch) Apply(e *models.QueueEntry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Service != nil {
		e.ServiceName = p.Service.Name
		e.ServiceDuration = p.Service.Duration
		e.ServicePrice = p.Service.Price
		e.Materials = p.Service.Materials.Clone()
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.PhotoURL != nil {
		e.PhotoURL = *p.PhotoURL
	}
}

type Repository interface {
	// -------- Order keys --------
	MaxOrder(ctx context.Context, barberID uint) (*int64, error)
	MinWaitingOrder(ctx context.Context, barberID uint) (*int64, error)

	// ApplyOrders writes every assignment or none of them.
	ApplyOrders(ctx context.Context, barberID uint, assignments []OrderAssignment) error

	// -------- Entries --------
	CreateEntry(ctx context.Context, e *models.QueueEntry) error
	GetEntry(ctx context.Context, barberID uint, id string) (*models.QueueEntry, error)
	DeleteEntry(ctx context.Context, barberID uint, id string) error

	// ListWaiting returns waiting entries sorted as SortWaiting does.
	ListWaiting(ctx context.Context, barberID uint) ([]models.QueueEntry, error)

	// ListCompleted returns done entries whose effective time is at or after
	// since. A zero since returns the whole history.
	ListCompleted(ctx context.Context, barberID uint, since time.Time) ([]models.QueueEntry, error)

	// UpdateEntryDetails applies patch only while the entry is waiting.
	UpdateEntryDetails(ctx context.Context, barberID uint, id string, patch EntryPatch) (*models.QueueEntry, error)

	// -------- State --------
	// TransitionEntry returns the entry after the call and whether this call
	// changed it.
	TransitionEntry(ctx context.Context, barberID uint, id string, t Transition) (*models.QueueEntry, bool, error)

	SetRating(ctx context.Context, barberID uint, id string, stars int) (*models.QueueEntry, error)
}
