package crm

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/messages"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const (
	DefaultInactiveDays = 20
	// janela da reconstrução retroativa
	BackfillLookbackDays = 180
)

// ===============================
// Upsert
// ===============================

type UpsertProfile struct {
	repo crm.Repository
}

func NewUpsertProfile(repo crm.Repository) *UpsertProfile {
	return &UpsertProfile{repo: repo}
}

func (uc *UpsertProfile) Execute(ctx context.Context, barberID uint, phone string, u crm.ProfileUpdate) (*models.ClientProfile, error) {
	key := crm.NormalizePhone(phone)
	if key == "" {
		return nil, httperr.ErrValidation("invalid_phone")
	}
	if err := uc.repo.ApplyProfileUpdate(ctx, barberID, key, u); err != nil {
		return nil, err
	}
	return uc.repo.GetProfile(ctx, barberID, key)
}

// ===============================
// Lookup
// ===============================

type ProfileView struct {
	Profile *models.ClientProfile `json:"profile"`
	// 1 when no profile exists yet
	Visits  int64                `json:"visits"`
	Loyalty crm.LoyaltyCard      `json:"loyalty"`
	Photos  []models.ClientPhoto `json:"photos"`
	Share   string               `json:"share_link,omitempty"`
}

type GetProfile struct {
	repo crm.Repository
}

func NewGetProfile(repo crm.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, barberID uint, phone string) (*ProfileView, error) {
	key := crm.NormalizePhone(phone)
	if key == "" {
		return nil, httperr.ErrValidation("invalid_phone")
	}

	p, err := uc.repo.GetProfile(ctx, barberID, key)
	if err != nil {
		return nil, err
	}

	photos, err := uc.repo.ListPhotos(ctx, barberID, key)
	if err != nil {
		return nil, err
	}

	visits := crm.DisplayVisits(p)
	view := &ProfileView{
		Profile: p,
		Visits:  visits,
		Loyalty: crm.Loyalty(visits),
		Photos:  photos,
	}
	if p != nil {
		view.Share = messages.WhatsAppLink(key, messages.LoyaltyShare(p.Name, visits))
	}
	return view, nil
}

type ListProfiles struct {
	repo crm.Repository
}

func NewListProfiles(repo crm.Repository) *ListProfiles {
	return &ListProfiles{repo: repo}
}

func (uc *ListProfiles) Execute(ctx context.Context, barberID uint) ([]models.ClientProfile, error) {
	return uc.repo.ListProfiles(ctx, barberID)
}

// ===============================
// Backfill
// ===============================

// Backfill creates the profiles missing for clients seen in recent completed
// tickets. Profiles that already exist are left alone, so running it again
// (or after an undo) never lowers a counter.
type Backfill struct {
	repo    crm.Repository
	history queue.Repository

	Now func() time.Time
}

func NewBackfill(repo crm.Repository, history queue.Repository) *Backfill {
	return &Backfill{repo: repo, history: history, Now: time.Now}
}

func (uc *Backfill) Execute(ctx context.Context, barberID uint) (int, error) {
	since := uc.Now().AddDate(0, 0, -BackfillLookbackDays)

	entries, err := uc.history.ListCompleted(ctx, barberID, since)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, r := range crm.Reconstruct(entries) {
		created, err := uc.repo.SeedProfile(ctx, barberID, r.Key, r.Update)
		if err != nil {
			return n, err
		}
		if created {
			n++
		}
	}

	slog.Info("crm backfill", "barber_id", barberID, "profiles", n, "entries", len(entries))
	return n, nil
}

// ===============================
// Inactive clients
// ===============================

type InactiveView struct {
	crm.InactiveClient
	WinBackLink string `json:"win_back_link"`
}

type ListInactive struct {
	repo     crm.Repository
	backfill *Backfill

	Now func() time.Time
}

func NewListInactive(repo crm.Repository, backfill *Backfill) *ListInactive {
	return &ListInactive{repo: repo, backfill: backfill, Now: time.Now}
}

func (uc *ListInactive) Execute(ctx context.Context, barberID uint, thresholdDays int) ([]InactiveView, error) {
	if thresholdDays <= 0 {
		thresholdDays = DefaultInactiveDays
	}

	// CRM ligado depois da fila: reconstrói a partir do histórico
	n, err := uc.repo.CountProfiles(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if n == 0 && uc.backfill != nil {
		if _, err := uc.backfill.Execute(ctx, barberID); err != nil {
			slog.Warn("crm backfill failed", "barber_id", barberID, "error", err)
		}
	}

	profiles, err := uc.repo.ListProfiles(ctx, barberID)
	if err != nil {
		return nil, err
	}

	inactive := crm.Inactive(profiles, uc.Now(), thresholdDays)
	out := make([]InactiveView, 0, len(inactive))
	for _, c := range inactive {
		out = append(out, InactiveView{
			InactiveClient: c,
			WinBackLink:    messages.WhatsAppLink(c.Profile.Phone, messages.WinBack(c.Profile.Name)),
		})
	}
	return out, nil
}
