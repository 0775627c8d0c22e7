package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var ErrServiceNotFound = errors.New("service not found")

// Validate checks a service before it is stored.
func Validate(s *models.Service) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return httperr.ErrValidation("name_required")
	}
	if s.DurationMin <= 0 {
		return httperr.ErrValidation("invalid_duration")
	}
	if s.Price.LessThan(decimal.Zero) {
		return httperr.ErrValidation("invalid_amount")
	}
	for _, m := range s.Materials {
		if m.Quantity <= 0 {
			return httperr.ErrValidation("invalid_materials")
		}
	}
	return nil
}

type Repository interface {
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, barberID, id uint) (*models.Service, error)
	SaveService(ctx context.Context, s *models.Service) error
	ListServices(ctx context.Context, barberID uint, activeOnly bool) ([]models.Service, error)
}

// Resolve copies an active service into the snapshot a ticket carries.
func Resolve(ctx context.Context, repo Repository, barberID, serviceID uint) (queue.ServiceSnapshot, error) {
	if serviceID == 0 {
		return queue.ServiceSnapshot{}, httperr.ErrValidation("service_required")
	}

	svc, err := repo.GetService(ctx, barberID, serviceID)
	if errors.Is(err, ErrServiceNotFound) {
		return queue.ServiceSnapshot{}, httperr.ErrValidation("service_not_found")
	}
	if err != nil {
		return queue.ServiceSnapshot{}, err
	}
	if !svc.Active {
		return queue.ServiceSnapshot{}, httperr.ErrValidation("service_inactive")
	}
	return queue.SnapshotOf(svc), nil
}
