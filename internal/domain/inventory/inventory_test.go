package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryConsumable, c)

	c, err = ParseCategory("Resale")
	require.NoError(t, err)
	assert.Equal(t, CategoryResale, c)

	_, err = ParseCategory("food")
	assert.Error(t, err)
}

func TestLowStock(t *testing.T) {
	products := []models.Product{
		{Name: "Pomada", Quantity: 5, MinQuantity: 5},
		{Name: "Shampoo", Quantity: 12, MinQuantity: 5},
		{Name: "Lâmina", Quantity: -2, MinQuantity: 3},
	}

	low := LowStock(products)

	require.Len(t, low, 2)
	assert.Equal(t, "Pomada", low[0].Name)
	assert.Equal(t, "Lâmina", low[1].Name)
}

func TestValidate(t *testing.T) {
	p := &models.Product{Name: "  Cera  "}
	require.NoError(t, Validate(p))
	assert.Equal(t, "Cera", p.Name)

	assert.Error(t, Validate(&models.Product{Name: " "}))
	assert.Error(t, Validate(&models.Product{Name: "x", MinQuantity: -1}))
}
