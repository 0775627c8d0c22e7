package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type CRMGormRepository struct {
	db *gorm.DB
}

func NewCRMGormRepository(db *gorm.DB) *CRMGormRepository {
	return &CRMGormRepository{db: db}
}

// ApplyProfileUpdate is a single INSERT .. ON CONFLICT so concurrent visits
// add up instead of overwriting each other.
func (r *CRMGormRepository) ApplyProfileUpdate(
	ctx context.Context,
	barberID uint,
	key string,
	u domain.ProfileUpdate,
) error {

	seed := u.Seed(barberID, key)

	set := map[string]any{
		"updated_at":   time.Now(),
		"total_spent":  gorm.Expr("client_profiles.total_spent + ?", u.AddSpent),
		"total_visits": gorm.Expr("client_profiles.total_visits + ?", u.IncrementVisits),
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.LastVisit != nil {
		set["last_visit"] = *u.LastVisit
	}
	if u.LastService != nil {
		set["last_service"] = *u.LastService
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "phone"}},
			DoUpdates: clause.Assignments(set),
		}).
		Create(&seed).Error
}

func (r *CRMGormRepository) SeedProfile(
	ctx context.Context,
	barberID uint,
	key string,
	u domain.ProfileUpdate,
) (bool, error) {

	seed := u.Seed(barberID, key)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&seed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CRMGormRepository) GetProfile(ctx context.Context, barberID uint, key string) (*models.ClientProfile, error) {
	var p models.ClientProfile
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND phone = ?", barberID, key).
		First(&p).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CRMGormRepository) ListProfiles(ctx context.Context, barberID uint) ([]models.ClientProfile, error) {
	var out []models.ClientProfile
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CRMGormRepository) CountProfiles(ctx context.Context, barberID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientProfile{}).
		Where("barber_id = ?", barberID).
		Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

// AppendPhoto keeps one gallery row per ticket, so a replay is a no-op.
func (r *CRMGormRepository) AppendPhoto(ctx context.Context, photo *models.ClientPhoto) error {
	if photo.EntryID == "" {
		return r.db.WithContext(ctx).Create(photo).Error
	}
	return r.db.WithContext(ctx).
		Where("barber_id = ? AND entry_id = ?", photo.BarberID, photo.EntryID).
		FirstOrCreate(photo).Error
}

func (r *CRMGormRepository) ListPhotos(ctx context.Context, barberID uint, key string) ([]models.ClientPhoto, error) {
	var out []models.ClientPhoto
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND phone = ?", barberID, key).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*CRMGormRepository)(nil)
