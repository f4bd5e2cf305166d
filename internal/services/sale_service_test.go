package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
)

func testProduct(name string, price float64, stock *int) *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

func intPtr(v int) *int { return &v }

func TestBuildSaleLines(t *testing.T) {
	t.Parallel()

	t.Run("snapshots prices and accumulates total", func(t *testing.T) {
		t.Parallel()

		coffee := testProduct("Coffee", 10000, intPtr(5))
		pastry := testProduct("Pastry", 15000, intPtr(3))
		products := map[uuid.UUID]*models.Product{coffee.ID: coffee, pastry.ID: pastry}

		lines, total, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: coffee.ID, Quantity: 3},
			{ProductID: pastry.ID, Quantity: 2},
		}, products)
		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, float64(60000), total)
		assert.Equal(t, float64(10000), lines[0].Price)
		assert.Equal(t, float64(30000), lines[0].Subtotal)
		assert.Equal(t, 3, lines[0].Quantity)
		assert.Equal(t, float64(30000), lines[1].Subtotal)
	})

	t.Run("empty items", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildSaleLines(nil, nil)
		assert.ErrorIs(t, err, ErrEmptySale)
	})

	t.Run("zero and negative quantities", func(t *testing.T) {
		t.Parallel()

		p := testProduct("Coffee", 10000, intPtr(5))
		products := map[uuid.UUID]*models.Product{p.ID: p}

		_, _, err := buildSaleLines([]dto.SaleLineRequest{{ProductID: p.ID, Quantity: 0}}, products)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, _, err = buildSaleLines([]dto.SaleLineRequest{{ProductID: p.ID, Quantity: -1}}, products)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: uuid.New(), Quantity: 1},
		}, map[uuid.UUID]*models.Product{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("insufficient stock rejects the whole batch", func(t *testing.T) {
		t.Parallel()

		coffee := testProduct("Coffee", 10000, intPtr(5))
		pastry := testProduct("Pastry", 15000, intPtr(1))
		products := map[uuid.UUID]*models.Product{coffee.ID: coffee, pastry.ID: pastry}

		_, _, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: coffee.ID, Quantity: 2},
			{ProductID: pastry.ID, Quantity: 2},
		}, products)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.ErrorContains(t, err, "Pastry")
	})

	t.Run("duplicate lines consume the same stock pool", func(t *testing.T) {
		t.Parallel()

		p := testProduct("Coffee", 10000, intPtr(5))
		products := map[uuid.UUID]*models.Product{p.ID: p}

		// 3 + 3 exceeds the 5 in stock even though each line alone fits.
		_, _, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: p.ID, Quantity: 3},
			{ProductID: p.ID, Quantity: 3},
		}, products)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		lines, total, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: p.ID, Quantity: 3},
			{ProductID: p.ID, Quantity: 2},
		}, products)
		require.NoError(t, err)
		assert.Len(t, lines, 2)
		assert.Equal(t, float64(50000), total)
	})

	t.Run("untracked stock never blocks", func(t *testing.T) {
		t.Parallel()

		p := testProduct("Service fee", 5000, nil)
		products := map[uuid.UUID]*models.Product{p.ID: p}

		lines, total, err := buildSaleLines([]dto.SaleLineRequest{
			{ProductID: p.ID, Quantity: 100},
		}, products)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
		assert.Equal(t, float64(500000), total)
	})
}
