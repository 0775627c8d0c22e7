package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestServicesCreateFillsMaterialNames(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	p := &models.Product{BarberID: 1, Name: "Pomada", Quantity: 10}
	require.NoError(t, s.CreateProduct(ctx, p))

	uc := NewServices(s, s, nil)
	svc, err := uc.Create(ctx, 1, ServiceInput{
		Name:        "Corte",
		DurationMin: 30,
		Price:       decimal.NewFromInt(40),
		Materials:   models.Materials{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, svc.Active)
	assert.Equal(t, "Pomada", svc.Materials[0].Name)

	off := false
	svc, err = uc.Update(ctx, 1, svc.ID, ServiceInput{Name: "Corte", DurationMin: 30, Active: &off})
	require.NoError(t, err)
	assert.False(t, svc.Active)

	active, err := uc.List(ctx, 1, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestServicesValidation(t *testing.T) {
	ctx := context.Background()
	uc := NewServices(memstore.New(), memstore.New(), nil)

	_, err := uc.Create(ctx, 1, ServiceInput{Name: "Corte"})
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))

	_, err = uc.Create(ctx, 1, ServiceInput{Name: "Corte", DurationMin: 30, Materials: models.Materials{{ProductID: 77, Quantity: 1}}})
	assert.True(t, httperr.IsBusiness(err, "invalid_materials"))

	_, err = uc.Update(ctx, 1, 99, ServiceInput{Name: "X", DurationMin: 10})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
