package queue

import (
	"context"
	"io"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// PhotoUploader stores an image and returns its URL.
type PhotoUploader interface {
	Upload(ctx context.Context, barberID uint, entryID string, r io.Reader) (string, error)
}

type AttachPhoto struct {
	repo     domain.Repository
	uploader PhotoUploader
	audit    *audit.Dispatcher
	pub      live.Publisher
}

// NewAttachPhoto accepts a nil uploader when photo storage is not configured.
func NewAttachPhoto(repo domain.Repository, uploader PhotoUploader, audit *audit.Dispatcher, pub live.Publisher) *AttachPhoto {
	return &AttachPhoto{repo: repo, uploader: uploader, audit: audit, pub: pub}
}

func (uc *AttachPhoto) Execute(ctx context.Context, barberID uint, actorID *uint, entryID string, r io.Reader) (*models.QueueEntry, error) {
	if uc.uploader == nil {
		return nil, httperr.ErrPrecondition("photos_disabled")
	}

	entry, err := uc.repo.GetEntry(ctx, barberID, entryID)
	if err != nil {
		return nil, mapEntryErr(err)
	}
	if err := domain.CanEdit(domain.Status(entry.Status)); err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, barberID, entryID, r)
	if err != nil {
		return nil, err
	}

	entry, err = uc.repo.UpdateEntryDetails(ctx, barberID, entryID, domain.EntryPatch{PhotoURL: &url})
	if err != nil {
		return nil, mapEntryErr(err)
	}

	dispatch(uc.audit, barberID, actorID, "queue_entry_photo", entry.ID, nil)
	publish(ctx, uc.pub, barberID)
	return entry, nil
}
