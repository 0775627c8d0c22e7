package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/effects"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type CompleteFirstInput struct {
	BarberID uint
	ActorID  *uint

	// HeadID is the entry the caller saw at the top. Empty means "whoever
	// is first now".
	HeadID        string
	PaymentMethod string
}

// CompleteResult separates the primary transition from its side effects.
type CompleteResult struct {
	Entry *models.QueueEntry `json:"entry"`
	// AlreadyDone: a concurrent call completed this entry first
	AlreadyDone bool           `json:"already_done"`
	Effects     effects.Report `json:"effects"`
}

type CompleteFirst struct {
	repo     domain.Repository
	stock    inventory.Repository
	profiles crm.Repository
	runner   *effects.Runner
	audit    *audit.Dispatcher
	pub      live.Publisher

	Now func() time.Time
}

func NewCompleteFirst(
	repo domain.Repository,
	stock inventory.Repository,
	profiles crm.Repository,
	runner *effects.Runner,
	audit *audit.Dispatcher,
	pub live.Publisher,
) *CompleteFirst {
	return &CompleteFirst{
		repo:     repo,
		stock:    stock,
		profiles: profiles,
		runner:   runner,
		audit:    audit,
		pub:      pub,
		Now:      time.Now,
	}
}

func (uc *CompleteFirst) Execute(ctx context.Context, in CompleteFirstInput) (*CompleteResult, error) {
	pm, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Quem é o primeiro
	// --------------------------------------------------
	headID := in.HeadID
	if headID == "" {
		list, err := uc.repo.ListWaiting(ctx, in.BarberID)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, httperr.ErrPrecondition("queue_empty")
		}
		headID = list[0].ID
	}

	// --------------------------------------------------
	// 2️⃣ Transição condicional waiting → done
	// --------------------------------------------------
	now := uc.Now()
	entry, changed, err := uc.repo.TransitionEntry(ctx, in.BarberID, headID, domain.Transition{
		From:          domain.StatusWaiting,
		To:            domain.StatusDone,
		CompletedAt:   &now,
		PaymentMethod: pm,
	})
	record("complete", err)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	if !changed {
		// snapshot velho: outro pedido já concluiu este cliente
		if entry.Status == string(domain.StatusDone) {
			return &CompleteResult{Entry: entry, AlreadyDone: true}, nil
		}
		return nil, domain.CanComplete(domain.Status(entry.Status))
	}

	metrics.Completions.WithLabelValues(string(pm)).Inc()

	// --------------------------------------------------
	// 3️⃣ Efeitos pós-commit (estoque, CRM, galeria)
	// --------------------------------------------------
	report := uc.runner.Run(ctx, uc.effectsFor(entry, now))

	dispatch(uc.audit, in.BarberID, in.ActorID, "queue_entry_completed", entry.ID, map[string]any{
		"payment_method": pm,
		"failed_effects": len(report.Failures()),
	})
	publish(ctx, uc.pub, in.BarberID)

	return &CompleteResult{Entry: entry, Effects: report}, nil
}

func (uc *CompleteFirst) effectsFor(entry *models.QueueEntry, now time.Time) []effects.Effect {
	barberID := entry.BarberID
	effs := make([]effects.Effect, 0, len(entry.Materials)+2)

	for _, m := range entry.Materials {
		m := m
		if m.Quantity <= 0 {
			continue
		}
		effs = append(effs, effects.Effect{
			Name:   "stock_deduction",
			Target: fmt.Sprintf("product:%d", m.ProductID),
			Run: func(ctx context.Context) error {
				return uc.stock.AdjustQuantity(ctx, barberID, m.ProductID, -m.Quantity)
			},
			Once: true,
		})
	}

	key := crm.NormalizePhone(entry.Phone)
	if key == "" {
		return effs
	}

	name, service := entry.Name, entry.ServiceName
	visit := now
	effs = append(effs, effects.Effect{
		Name:   "profile_visit",
		Target: key,
		Run: func(ctx context.Context) error {
			return uc.profiles.ApplyProfileUpdate(ctx, barberID, key, crm.ProfileUpdate{
				Name:            &name,
				LastVisit:       &visit,
				LastService:     &service,
				IncrementVisits: 1,
				AddSpent:        entry.ServicePrice,
			})
		},
		Once: true,
	})

	if entry.PhotoURL != "" {
		photo := models.ClientPhoto{
			BarberID:  barberID,
			Phone:     key,
			EntryID:   entry.ID,
			URL:       entry.PhotoURL,
			CreatedAt: now,
		}
		effs = append(effs, effects.Effect{
			Name:   "photo_gallery",
			Target: key,
			Run: func(ctx context.Context) error {
				p := photo
				return uc.profiles.AppendPhoto(ctx, &p)
			},
		})
	}

	return effs
}
