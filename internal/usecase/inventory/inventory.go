package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type ProductInput struct {
	Name        string
	Category    string
	Quantity    int
	MinQuantity *int
	Price       decimal.Decimal
}

type Overview struct {
	Products []models.Product `json:"products"`
	LowStock []models.Product `json:"low_stock"`
}

// Products groups the inventory operations of a barber.
type Products struct {
	repo  inventory.Repository
	audit *audit.Dispatcher
}

func NewProducts(repo inventory.Repository, audit *audit.Dispatcher) *Products {
	return &Products{repo: repo, audit: audit}
}

func mapErr(err error) error {
	if errors.Is(err, inventory.ErrProductNotFound) {
		return httperr.ErrNotFound("product_not_found")
	}
	return err
}

func (uc *Products) apply(p *models.Product, in ProductInput) error {
	cat, err := inventory.ParseCategory(in.Category)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Category = string(cat)
	p.Quantity = in.Quantity
	p.Price = in.Price
	if in.MinQuantity != nil {
		p.MinQuantity = *in.MinQuantity
	} else if p.MinQuantity == 0 {
		p.MinQuantity = inventory.DefaultMinQuantity
	}
	return inventory.Validate(p)
}

func (uc *Products) Create(ctx context.Context, barberID uint, in ProductInput) (*models.Product, error) {
	p := &models.Product{BarberID: barberID}
	if err := uc.apply(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	uc.dispatch(barberID, "product_created", p.ID)
	return p, nil
}

func (uc *Products) Update(ctx context.Context, barberID, id uint, in ProductInput) (*models.Product, error) {
	p, err := uc.repo.GetProduct(ctx, barberID, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := uc.apply(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveProduct(ctx, p); err != nil {
		return nil, mapErr(err)
	}
	uc.dispatch(barberID, "product_updated", p.ID)
	return p, nil
}

func (uc *Products) Delete(ctx context.Context, barberID, id uint) error {
	if err := uc.repo.DeleteProduct(ctx, barberID, id); err != nil {
		return mapErr(err)
	}
	uc.dispatch(barberID, "product_deleted", id)
	return nil
}

// Adjust adds delta to the stock in one atomic write.
func (uc *Products) Adjust(ctx context.Context, barberID, id uint, delta int) (*models.Product, error) {
	if delta == 0 {
		return nil, httperr.ErrValidation("invalid_amount")
	}
	if err := uc.repo.AdjustQuantity(ctx, barberID, id, delta); err != nil {
		return nil, mapErr(err)
	}
	uc.dispatch(barberID, "product_adjusted", id)
	return uc.repo.GetProduct(ctx, barberID, id)
}

func (uc *Products) List(ctx context.Context, barberID uint) (*Overview, error) {
	products, err := uc.repo.ListProducts(ctx, barberID)
	if err != nil {
		return nil, err
	}
	return &Overview{Products: products, LowStock: inventory.LowStock(products)}, nil
}

func (uc *Products) dispatch(barberID uint, action string, id uint) {
	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   action,
		Entity:   "product",
		EntityID: strconv.FormatUint(uint64(id), 10),
	})
}
