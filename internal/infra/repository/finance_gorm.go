package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

func (r *FinanceGormRepository) CreateExpense(ctx context.Context, e *models.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *FinanceGormRepository) DeleteExpense(ctx context.Context, barberID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *FinanceGormRepository) ListExpenses(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Expense, error) {

	var out []models.Expense
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND created_at >= ? AND created_at < ?", barberID, from, to).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Goals (colunas do usuário)
// --------------------------------------------------

func (r *FinanceGormRepository) GetGoals(ctx context.Context, barberID uint) (domain.Goals, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Select("id", "daily_goal", "monthly_goal", "fixed_costs").
		First(&u, barberID).Error
	if isNotFound(err) {
		return domain.Goals{}, barber.ErrBarberNotFound
	}
	if err != nil {
		return domain.Goals{}, err
	}
	return domain.GoalsOf(&u), nil
}

func (r *FinanceGormRepository) SaveGoals(ctx context.Context, barberID uint, g domain.Goals) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", barberID).
		Updates(map[string]any{
			"daily_goal":   g.DailyGoal,
			"monthly_goal": g.MonthlyGoal,
			"fixed_costs":  g.FixedCosts,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return barber.ErrBarberNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*FinanceGormRepository)(nil)
