package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Category string

const (
	CategoryConsumable Category = "consumable"
	CategoryResale     Category = "resale"
)

const DefaultMinQuantity = 5

var ErrProductNotFound = errors.New("product not found")

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryConsumable, nil
	case CategoryConsumable, CategoryResale:
		return c, nil
	}
	return "", httperr.ErrValidation("invalid_category")
}

func Validate(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return httperr.ErrValidation("name_required")
	}
	if p.MinQuantity < 0 {
		return httperr.ErrValidation("invalid_amount")
	}
	if p.Price.LessThan(decimal.Zero) {
		return httperr.ErrValidation("invalid_amount")
	}
	return nil
}

// IsLowStock: quantidade no limite ou abaixo
func IsLowStock(p models.Product) bool {
	return p.Quantity <= p.MinQuantity
}

func LowStock(products []models.Product) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			out = append(out, p)
		}
	}
	return out
}

type Repository interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, barberID, id uint) (*models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, barberID, id uint) error
	ListProducts(ctx context.Context, barberID uint) ([]models.Product, error)

	// AdjustQuantity adds delta in a single atomic write. No floor is applied.
	AdjustQuantity(ctx context.Context, barberID, productID uint, delta int) error
}
