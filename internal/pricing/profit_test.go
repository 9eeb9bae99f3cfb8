package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

func TestProfit(t *testing.T) {
	p := Profit(d("15.00"), d("8.00"), d("6.99"))
	assert.True(t, p.Equal(d("0.01")), "profit %s", p)
}

func TestCalculateOrder_UsesSelectedShipping(t *testing.T) {
	carrier := "DHL"
	price := d("5.49")
	order := &models.Order{
		ID:                      1,
		Status:                  models.OrderStatusProcessing,
		SelectedShippingCarrier: &carrier,
		SelectedShippingPrice:   &price,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
			{ProductID: 2, Quantity: 1, PricePerUnit: d("9.00")},
		},
	}

	calc := CalculateOrder(order, testCatalog())

	assert.True(t, calc.ShippingSelected)
	assert.True(t, calc.ShippingCost.Equal(d("5.49")))
	// 15.00 - 8.00 - 5.49
	assert.True(t, calc.Profit.Equal(d("1.51")), "profit %s", calc.Profit)
}

func TestCalculateOrder_FallsBackToCheapestCandidate(t *testing.T) {
	order := &models.Order{
		ID:     2,
		Status: models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
			{ProductID: 2, Quantity: 1, PricePerUnit: d("9.00")},
		},
	}

	calc := CalculateOrder(order, testCatalog())

	require.NotEmpty(t, calc.Candidates)
	assert.False(t, calc.ShippingSelected)
	// 2kg shipment: cheapest is DHL Päckchen S at 3.99.
	assert.True(t, calc.ShippingCost.Equal(d("3.99")))
	assert.True(t, calc.Profit.Equal(d("3.01")), "profit %s", calc.Profit)
}

func TestCalculateOrder_NoCandidateMeansZeroShipping(t *testing.T) {
	catalog := map[int]*models.Product{
		1: {ID: 1, PurchasePrice: d("10"), SalePrice: d("20"),
			Weight: d("40"), WeightUnit: models.WeightUnitKilogram},
	}
	order := &models.Order{
		ID:     3,
		Status: models.OrderStatusPending,
		Items:  []models.OrderItem{{ProductID: 1, Quantity: 1, PricePerUnit: d("20")}},
	}

	calc := CalculateOrder(order, catalog)

	assert.Empty(t, calc.Candidates)
	assert.True(t, calc.ShippingCost.IsZero())
	assert.True(t, calc.Profit.Equal(d("10")))
}
