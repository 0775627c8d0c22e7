package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type ServiceInput struct {
	Name        string
	Description string
	DurationMin int
	Price       decimal.Decimal
	Category    string
	Active      *bool
	Materials   models.Materials
}

// Services manages the barber's catalog. Edits never reach tickets that
// were already created.
type Services struct {
	repo     catalog.Repository
	products inventory.Repository
	audit    *audit.Dispatcher
}

func NewServices(repo catalog.Repository, products inventory.Repository, audit *audit.Dispatcher) *Services {
	return &Services{repo: repo, products: products, audit: audit}
}

func mapErr(err error) error {
	if errors.Is(err, catalog.ErrServiceNotFound) {
		return httperr.ErrNotFound("service_not_found")
	}
	return err
}

// materials fills the product name of each line from the inventory.
func (uc *Services) materials(ctx context.Context, barberID uint, in models.Materials) (models.Materials, error) {
	out := in.Clone()
	for i, m := range out {
		p, err := uc.products.GetProduct(ctx, barberID, m.ProductID)
		if errors.Is(err, inventory.ErrProductNotFound) {
			return nil, httperr.ErrValidation("invalid_materials")
		}
		if err != nil {
			return nil, err
		}
		out[i].Name = p.Name
	}
	return out, nil
}

func (uc *Services) apply(ctx context.Context, s *models.Service, in ServiceInput) error {
	mats, err := uc.materials(ctx, s.BarberID, in.Materials)
	if err != nil {
		return err
	}
	s.Name = in.Name
	s.Description = in.Description
	s.DurationMin = in.DurationMin
	s.Price = in.Price
	s.Category = in.Category
	s.Materials = mats
	if in.Active != nil {
		s.Active = *in.Active
	}
	return catalog.Validate(s)
}

func (uc *Services) Create(ctx context.Context, barberID uint, in ServiceInput) (*models.Service, error) {
	s := &models.Service{BarberID: barberID, Active: true}
	if err := uc.apply(ctx, s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}
	uc.dispatch(barberID, "service_created", s.ID)
	return s, nil
}

func (uc *Services) Update(ctx context.Context, barberID, id uint, in ServiceInput) (*models.Service, error) {
	s, err := uc.repo.GetService(ctx, barberID, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := uc.apply(ctx, s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveService(ctx, s); err != nil {
		return nil, mapErr(err)
	}
	uc.dispatch(barberID, "service_updated", s.ID)
	return s, nil
}

func (uc *Services) List(ctx context.Context, barberID uint, activeOnly bool) ([]models.Service, error) {
	return uc.repo.ListServices(ctx, barberID, activeOnly)
}

func (uc *Services) dispatch(barberID uint, action string, id uint) {
	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		UserID:   &barberID,
		Action:   action,
		Entity:   "service",
		EntityID: strconv.FormatUint(uint64(id), 10),
	})
}
