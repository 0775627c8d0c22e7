package crm

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// NormalizePhone turns any phone representation into the profile key.
func NormalizePhone(phone string) string {
	return validators.Digits(phone)
}

// ProfileUpdate is a typed upsert command. Set fields overwrite, increment
// fields are deltas on an existing profile and initial values on a new one.
type ProfileUpdate struct {
	Name        *string
	LastVisit   *time.Time
	LastService *string

	IncrementVisits int64
	AddSpent        decimal.Decimal
}

// Seed builds the profile created when none exists yet.
func (u ProfileUpdate) Seed(barberID uint, key string) models.ClientProfile {
	p := models.ClientProfile{BarberID: barberID, Phone: key}
	u.setFields(&p)
	p.TotalVisits += u.IncrementVisits
	p.TotalSpent = p.TotalSpent.Add(u.AddSpent)
	return p
}

// Apply merges the update into an existing profile.
func (u ProfileUpdate) Apply(p *models.ClientProfile) {
	u.setFields(p)
	p.TotalVisits += u.IncrementVisits
	p.TotalSpent = p.TotalSpent.Add(u.AddSpent)
}

func (u ProfileUpdate) setFields(p *models.ClientProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.LastVisit != nil {
		v := *u.LastVisit
		p.LastVisit = &v
	}
	if u.LastService != nil {
		p.LastService = *u.LastService
	}
}

// DisplayVisits treats a missing profile as the first-ever visit.
func DisplayVisits(p *models.ClientProfile) int64 {
	if p == nil {
		return 1
	}
	return p.TotalVisits
}

// ===============================
// Inactivity
// ===============================

type InactiveClient struct {
	Profile   models.ClientProfile `json:"profile"`
	DaysSince int                  `json:"days_since"`
}

// Inactive keeps profiles whose last visit is older than thresholdDays,
// longest absence first. Profiles without a visit are skipped.
func Inactive(profiles []models.ClientProfile, now time.Time, thresholdDays int) []InactiveClient {
	cutoff := now.AddDate(0, 0, -thresholdDays)

	out := make([]InactiveClient, 0)
	for _, p := range profiles {
		if p.LastVisit == nil || !p.LastVisit.Before(cutoff) {
			continue
		}
		out = append(out, InactiveClient{
			Profile:   p,
			DaysSince: int(now.Sub(*p.LastVisit).Hours() / 24),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysSince > out[j].DaysSince
	})
	return out
}

// ===============================
// Backfill
// ===============================

// Reconstructed is a profile derived from completed queue history.
type Reconstructed struct {
	Key    string
	Update ProfileUpdate
}

// Reconstruct groups done entries by phone and keeps the most recent visit
// for each. The updates are seeds for missing profiles only: counters of an
// existing profile are never recomputed from history.
func Reconstruct(entries []models.QueueEntry) []Reconstructed {
	type acc struct {
		last   models.QueueEntry
		visits int64
		spent  decimal.Decimal
	}

	byKey := map[string]*acc{}
	order := []string{}
	for _, e := range entries {
		key := NormalizePhone(e.Phone)
		if key == "" {
			continue
		}
		a, ok := byKey[key]
		if !ok {
			a = &acc{last: e}
			byKey[key] = a
			order = append(order, key)
		}
		a.visits++
		a.spent = a.spent.Add(e.ServicePrice)
		if e.EffectiveTime().After(a.last.EffectiveTime()) {
			a.last = e
		}
	}

	out := make([]Reconstructed, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		name := a.last.Name
		service := a.last.ServiceName
		visit := a.last.EffectiveTime()
		visits, spent := a.visits, a.spent
		out = append(out, Reconstructed{
			Key: key,
			Update: ProfileUpdate{
				Name:            &name,
				LastVisit:       &visit,
				LastService:     &service,
				IncrementVisits: visits,
				AddSpent:        spent,
			},
		})
	}
	return out
}

// ===============================
// Repository
// ===============================

type Repository interface {
	// ApplyProfileUpdate creates or merges atomically; increments never lose
	// concurrent updates.
	ApplyProfileUpdate(ctx context.Context, barberID uint, key string, u ProfileUpdate) error

	// SeedProfile creates the profile from u only when none exists. It
	// reports whether a row was created and never touches an existing one.
	SeedProfile(ctx context.Context, barberID uint, key string, u ProfileUpdate) (bool, error)

	// GetProfile returns nil, nil when no profile exists.
	GetProfile(ctx context.Context, barberID uint, key string) (*models.ClientProfile, error)
	ListProfiles(ctx context.Context, barberID uint) ([]models.ClientProfile, error)
	CountProfiles(ctx context.Context, barberID uint) (int64, error)

	AppendPhoto(ctx context.Context, photo *models.ClientPhoto) error
	ListPhotos(ctx context.Context, barberID uint, key string) ([]models.ClientPhoto, error)
}
