package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// CatalogGormRepository stores services and the stock they consume.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) GetService(ctx context.Context, barberID, id uint) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&s).Error
	if isNotFound(err) {
		return nil, catalog.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) SaveService(ctx context.Context, s *models.Service) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND barber_id = ?", s.ID, s.BarberID).
		Select("*").
		Omit("id", "created_at").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, barberID uint, activeOnly bool) ([]models.Service, error) {
	tx := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}

	var out []models.Service
	if err := tx.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *CatalogGormRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CatalogGormRepository) GetProduct(ctx context.Context, barberID, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&p).Error
	if isNotFound(err) {
		return nil, inventory.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogGormRepository) SaveProduct(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND barber_id = ?", p.ID, p.BarberID).
		Select("*").
		Omit("id", "created_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (r *CatalogGormRepository) DeleteProduct(ctx context.Context, barberID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (r *CatalogGormRepository) ListProducts(ctx context.Context, barberID uint) ([]models.Product, error) {
	var out []models.Product
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustQuantity é um único UPDATE relativo; sem piso em zero.
func (r *CatalogGormRepository) AdjustQuantity(ctx context.Context, barberID, productID uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND barber_id = ?", productID, barberID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

// Compile-time check
var (
	_ catalog.Repository   = (*CatalogGormRepository)(nil)
	_ inventory.Repository = (*CatalogGormRepository)(nil)
)
