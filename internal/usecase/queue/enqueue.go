package queue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/effects"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

const (
	SourceBarber  = "barber"
	SourceCheckIn = "check_in"
)

// ======================================================
// INPUT
// ======================================================

type EnqueueInput struct {
	BarberID uint
	ActorID  *uint

	Name  string
	Phone string
	// walk-in sem celular
	Phoneless bool

	ServiceID uint
	Notes     string
	Source    string
}

type EnqueueResult struct {
	Entry    *models.QueueEntry `json:"entry"`
	Position int                `json:"position"`
	Effects  effects.Report     `json:"effects"`
}

// ======================================================
// USE CASE
// ======================================================

type Enqueue struct {
	repo     domain.Repository
	services catalog.Repository
	profiles crm.Repository
	runner   *effects.Runner
	audit    *audit.Dispatcher
	pub      live.Publisher

	Now func() time.Time
}

func NewEnqueue(
	repo domain.Repository,
	services catalog.Repository,
	profiles crm.Repository,
	runner *effects.Runner,
	audit *audit.Dispatcher,
	pub live.Publisher,
) *Enqueue {
	return &Enqueue{
		repo:     repo,
		services: services,
		profiles: profiles,
		runner:   runner,
		audit:    audit,
		pub:      pub,
		Now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Enqueue) Execute(ctx context.Context, in EnqueueInput) (*EnqueueResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação (nada é gravado antes)
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("name_required")
	}

	phone := strings.TrimSpace(in.Phone)
	if !in.Phoneless || phone != "" {
		if !validators.IsPlausiblePhone(phone) {
			return nil, httperr.ErrValidation("invalid_phone")
		}
	}

	snap, err := catalog.Resolve(ctx, uc.services, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Ticket com ordem no fim da fila
	// --------------------------------------------------
	now := uc.Now()
	entry := &models.QueueEntry{
		ID:              uuid.NewString(),
		BarberID:        in.BarberID,
		Name:            name,
		Phone:           phone,
		ServiceName:     snap.Name,
		ServiceDuration: snap.Duration,
		ServicePrice:    snap.Price,
		Materials:       snap.Materials,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          string(domain.InitialStatus()),
		JoinedAt:        now,
	}

	if err := uc.insert(ctx, entry); err != nil {
		return nil, mapEntryErr(err)
	}

	source := in.Source
	if source == "" {
		source = SourceBarber
	}
	metrics.EntriesEnqueued.WithLabelValues(source).Inc()

	// --------------------------------------------------
	// 3️⃣ Sincroniza nome no CRM (best-effort)
	// --------------------------------------------------
	var effs []effects.Effect
	if key := crm.NormalizePhone(phone); key != "" {
		effs = append(effs, effects.Effect{
			Name:   "profile_identity",
			Target: key,
			Run: func(ctx context.Context) error {
				return uc.profiles.ApplyProfileUpdate(ctx, in.BarberID, key, crm.ProfileUpdate{Name: &name})
			},
		})
	}
	report := uc.runner.Run(ctx, effs)

	// --------------------------------------------------
	// 4️⃣ Posição atual
	// --------------------------------------------------
	position := 0
	if list, err := uc.repo.ListWaiting(ctx, in.BarberID); err == nil {
		position = domain.Position(list, entry.ID)
	}

	dispatch(uc.audit, in.BarberID, in.ActorID, "queue_entry_created", entry.ID, map[string]any{
		"source":  source,
		"service": entry.ServiceName,
	})
	publish(ctx, uc.pub, in.BarberID)

	return &EnqueueResult{Entry: entry, Position: position, Effects: report}, nil
}

// insert retries with a fresh key when a concurrent enqueue took the same one.
func (uc *Enqueue) insert(ctx context.Context, entry *models.QueueEntry) error {
	var err error
	for attempt := 0; attempt < maxOrderAttempts; attempt++ {
		var max *int64
		max, err = uc.repo.MaxOrder(ctx, entry.BarberID)
		if err != nil {
			return err
		}
		order := domain.NextOrder(max)
		entry.Order = &order

		err = uc.repo.CreateEntry(ctx, entry)
		if !errors.Is(err, domain.ErrOrderConflict) {
			return err
		}
		metrics.OrderConflicts.Inc()
	}
	return err
}
