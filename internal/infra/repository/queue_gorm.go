package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const waitingScope = "barber_id = ? AND status = 'waiting'"

type QueueGormRepository struct {
	db *gorm.DB
}

func NewQueueGormRepository(db *gorm.DB) *QueueGormRepository {
	return &QueueGormRepository{db: db}
}

// --------------------------------------------------
// Order keys
// --------------------------------------------------

func (r *QueueGormRepository) aggregateOrder(ctx context.Context, fn string, barberID uint) (*int64, error) {
	var v sql.NullInt64
	if err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Select(fn+"(queue_order)").
		Where(waitingScope, barberID).
		Row().
		Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Int64, nil
}

func (r *QueueGormRepository) MaxOrder(ctx context.Context, barberID uint) (*int64, error) {
	return r.aggregateOrder(ctx, "MAX", barberID)
}

func (r *QueueGormRepository) MinWaitingOrder(ctx context.Context, barberID uint) (*int64, error) {
	return r.aggregateOrder(ctx, "MIN", barberID)
}

// ApplyOrders clears the touched keys first so swaps never trip the partial
// unique index halfway through.
func (r *QueueGormRepository) ApplyOrders(
	ctx context.Context,
	barberID uint,
	assignments []domain.OrderAssignment,
) error {

	if len(assignments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []models.QueueEntry
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(waitingScope, barberID).
			Where("id IN ?", ids).
			Find(&locked).Error; err != nil {
			return err
		}
		if len(locked) != len(ids) {
			return domain.ErrEntryNotFound
		}

		if err := tx.Model(&models.QueueEntry{}).
			Where("id IN ?", ids).
			Update("queue_order", nil).Error; err != nil {
			return err
		}

		for _, a := range assignments {
			if err := tx.Model(&models.QueueEntry{}).
				Where("id = ?", a.ID).
				Updates(map[string]any{"queue_order": a.Order, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return domain.ErrOrderConflict
	}
	return err
}

// --------------------------------------------------
// Entries
// --------------------------------------------------

func (r *QueueGormRepository) CreateEntry(ctx context.Context, e *models.QueueEntry) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if httperr.IsUniqueViolation(err) {
		return domain.ErrOrderConflict
	}
	return err
}

func (r *QueueGormRepository) GetEntry(ctx context.Context, barberID uint, id string) (*models.QueueEntry, error) {
	var e models.QueueEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&e).Error
	if isNotFound(err) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) DeleteEntry(ctx context.Context, barberID uint, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.QueueEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *QueueGormRepository) ListWaiting(ctx context.Context, barberID uint) ([]models.QueueEntry, error) {
	var out []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where(waitingScope, barberID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	domain.SortWaiting(out)
	return out, nil
}

func (r *QueueGormRepository) ListCompleted(
	ctx context.Context,
	barberID uint,
	since time.Time,
) ([]models.QueueEntry, error) {

	tx := r.db.WithContext(ctx).
		Where("barber_id = ? AND status = 'done'", barberID)
	if !since.IsZero() {
		tx = tx.Where("COALESCE(completed_at, joined_at) >= ?", since)
	}

	var out []models.QueueEntry
	if err := tx.
		Order("COALESCE(completed_at, joined_at) ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// lockEntry reads the row FOR UPDATE inside tx.
func lockEntry(tx *gorm.DB, barberID uint, id string) (*models.QueueEntry, error) {
	var e models.QueueEntry
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&e).Error
	if isNotFound(err) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) UpdateEntryDetails(
	ctx context.Context,
	barberID uint,
	id string,
	patch domain.EntryPatch,
) (*models.QueueEntry, error) {

	var out *models.QueueEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, barberID, id)
		if err != nil {
			return err
		}
		if err := domain.CanEdit(domain.Status(e.Status)); err != nil {
			return err
		}

		patch.Apply(e)
		if err := tx.Save(e).Error; err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// State
// --------------------------------------------------

func (r *QueueGormRepository) TransitionEntry(
	ctx context.Context,
	barberID uint,
	id string,
	t domain.Transition,
) (*models.QueueEntry, bool, error) {

	var (
		out     *models.QueueEntry
		changed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, barberID, id)
		if err != nil {
			return err
		}
		out = e

		// outra requisição chegou antes
		if e.Status != string(t.From) {
			return nil
		}

		e.Status = string(t.To)
		if t.CompletedAt != nil {
			v := *t.CompletedAt
			e.CompletedAt = &v
		}
		if t.ClearCompleted {
			e.CompletedAt = nil
		}
		if t.CancelledAt != nil {
			v := *t.CancelledAt
			e.CancelledAt = &v
		}
		if t.PaymentMethod != "" {
			e.PaymentMethod = string(t.PaymentMethod)
		}
		if t.Order != nil {
			v := *t.Order
			e.Order = &v
		}

		if err := tx.Save(e).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return nil, false, domain.ErrOrderConflict
	}
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

func (r *QueueGormRepository) SetRating(
	ctx context.Context,
	barberID uint,
	id string,
	stars int,
) (*models.QueueEntry, error) {

	var out *models.QueueEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, barberID, id)
		if err != nil {
			return err
		}
		if err := domain.CanRate(domain.Status(e.Status)); err != nil {
			return err
		}
		if err := tx.Model(e).Update("rating", stars).Error; err != nil {
			return err
		}
		e.Rating = &stars
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*QueueGormRepository)(nil)
