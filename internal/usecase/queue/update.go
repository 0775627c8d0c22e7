package queue

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// UpdateInput edits a waiting ticket. Nil fields are kept.
type UpdateInput struct {
	BarberID uint
	ActorID  *uint
	EntryID  string

	Name      *string
	Phone     *string
	ServiceID *uint
	Notes     *string
	PhotoURL  *string
}

type Update struct {
	repo     domain.Repository
	services catalog.Repository
	audit    *audit.Dispatcher
	pub      live.Publisher
}

func NewUpdate(repo domain.Repository, services catalog.Repository, audit *audit.Dispatcher, pub live.Publisher) *Update {
	return &Update{repo: repo, services: services, audit: audit, pub: pub}
}

func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*models.QueueEntry, error) {
	var patch domain.EntryPatch

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("name_required")
		}
		patch.Name = &name
	}

	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		// string vazia remove o telefone
		if phone != "" && !validators.IsPlausiblePhone(phone) {
			return nil, httperr.ErrValidation("invalid_phone")
		}
		patch.Phone = &phone
	}

	if in.ServiceID != nil {
		snap, err := catalog.Resolve(ctx, uc.services, in.BarberID, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		patch.Service = &snap
	}

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		patch.Notes = &notes
	}
	patch.PhotoURL = in.PhotoURL

	entry, err := uc.repo.UpdateEntryDetails(ctx, in.BarberID, in.EntryID, patch)
	record("update", err)
	if err != nil {
		return nil, mapEntryErr(err)
	}

	dispatch(uc.audit, in.BarberID, in.ActorID, "queue_entry_updated", entry.ID, nil)
	publish(ctx, uc.pub, in.BarberID)
	return entry, nil
}
