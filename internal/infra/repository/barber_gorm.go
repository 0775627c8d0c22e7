package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

// --------------------------------------------------
// Status
// --------------------------------------------------

func (r *BarberGormRepository) GetStatus(ctx context.Context, barberID uint) (*models.BarberStatus, error) {
	var st models.BarberStatus
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&st).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *BarberGormRepository) SaveStatus(ctx context.Context, st *models.BarberStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "break_started_at", "break_duration", "break_ends_at", "updated_at"}),
		}).
		Create(st).Error
}

func (r *BarberGormRepository) ListExpiredBreaks(ctx context.Context, now time.Time) ([]models.BarberStatus, error) {
	var out []models.BarberStatus
	if err := r.db.WithContext(ctx).
		Where("status = 'on_break' AND break_ends_at IS NOT NULL AND break_ends_at <= ?", now).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Barber / Barbershop
// --------------------------------------------------

func (r *BarberGormRepository) findUser(tx *gorm.DB) (*models.User, error) {
	var u models.User
	err := tx.Preload("Barbershop").First(&u).Error
	if isNotFound(err) {
		return nil, domain.ErrBarberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BarberGormRepository) GetBarber(ctx context.Context, barberID uint) (*models.User, error) {
	return r.findUser(r.db.WithContext(ctx).Where("users.id = ?", barberID))
}

// FindBarberBySlug resolves the public slug to the shop owner (lowest id).
func (r *BarberGormRepository) FindBarberBySlug(ctx context.Context, slug string) (*models.User, error) {
	return r.findUser(r.db.WithContext(ctx).
		Joins("JOIN barbershops ON barbershops.id = users.barbershop_id").
		Where("barbershops.slug = ?", slug).
		Order("users.id ASC"))
}

func (r *BarberGormRepository) FindBarberByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(r.db.WithContext(ctx).Where("users.email = ?", email))
}

func (r *BarberGormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Barbershop{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

func (r *BarberGormRepository) ListBarberIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *BarberGormRepository) CreateBarber(ctx context.Context, shop *models.Barbershop, user *models.User) error {
	if shop.Timezone == "" {
		shop.Timezone = timezone.DefaultTimezone
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return err
		}
		user.BarbershopID = shop.ID
		if err := tx.Omit("Barbershop").Create(user).Error; err != nil {
			return err
		}
		user.Barbershop = *shop
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *BarberGormRepository) SaveBarbershop(ctx context.Context, shop *models.Barbershop) error {
	res := r.db.WithContext(ctx).
		Model(&models.Barbershop{}).
		Where("id = ?", shop.ID).
		Select("name", "phone", "address", "timezone").
		Updates(shop)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBarberNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BarberGormRepository)(nil)
