package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) CreateAppointments(
	ctx context.Context,
	aps []models.Appointment,
) error {

	if len(aps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&aps).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barberID uint,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&ap).Error
	if isNotFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND barber_id = ?", ap.ID, ap.BarberID).
		Select("*").
		Omit("id", "created_at").
		Updates(ap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Promotion
// --------------------------------------------------

func (r *AppointmentGormRepository) PromoteToQueue(
	ctx context.Context,
	barberID uint,
	id string,
	entry *models.QueueEntry,
	movedAt time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barber_id = ?", id, barberID).
			First(&ap).Error
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := domain.CanPromote(domain.Status(ap.Status)); err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		entryID := entry.ID
		ap.Status = string(domain.StatusMovedToQueue)
		ap.MovedAt = &movedAt
		ap.QueueEntryID = &entryID
		return tx.Model(&ap).Updates(map[string]any{
			"status":         ap.Status,
			"moved_at":       movedAt,
			"queue_entry_id": entryID,
		}).Error
	})

	if httperr.IsUniqueViolation(err) {
		return nil, queue.ErrOrderConflict
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND scheduled_date >= ? AND scheduled_date < ?",
			barberID,
			start,
			end,
		).
		Order("scheduled_date ASC, scheduled_time ASC, id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
