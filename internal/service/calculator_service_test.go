package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

type fakePeriodStore struct {
	orders []*models.Order
}

func (s *fakePeriodStore) ListByPeriod(year, month int) ([]*models.Order, error) {
	return s.orders, nil
}

type fakeSettingsStore struct {
	settings *models.CostSettings
}

func (s *fakeSettingsStore) GetByAdmin(adminUserID int) (*models.CostSettings, error) {
	return s.settings, nil
}

func TestCalculatorService_Calculate(t *testing.T) {
	selectedCarrier := "DHL"
	selectedPrice := d("5.49")
	orders := []*models.Order{
		{
			// 2kg shipment with a recorded shipping selection.
			ID: 1, Reference: "ORD-A", Status: models.OrderStatusShipped,
			SelectedShippingCarrier: &selectedCarrier,
			SelectedShippingPrice:   &selectedPrice,
			Items: []models.OrderItem{
				{ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
				{ProductID: 2, Quantity: 1, PricePerUnit: d("9.00")},
			},
		},
		{
			// No selection: cheapest candidate (0.5kg → Hermes 3.70) applies.
			ID: 2, Reference: "ORD-B", Status: models.OrderStatusPending,
			Items: []models.OrderItem{
				{ProductID: 1, Quantity: 1, PricePerUnit: d("3.00")},
			},
		},
	}

	svc := NewCalculatorService(
		&fakePeriodStore{orders: orders},
		testProducts(),
		&fakeSettingsStore{settings: &models.CostSettings{
			AdminUserID:          1,
			WarehouseCost:        d("10"),
			IncomingShippingCost: d("2"),
		}},
	)

	result, err := svc.Calculate(1, 2026, 8)
	require.NoError(t, err)
	require.Len(t, result.Orders, 2)

	// Order A: revenue 15.00, cost 8.00, shipping 5.49 → profit 1.51.
	assert.True(t, result.Orders[0].Profit.Equal(d("1.51")), "profit %s", result.Orders[0].Profit)
	assert.True(t, result.Orders[0].ShippingSelected)

	// Order B: revenue 3.00, cost 1.50, shipping 3.70 → profit -2.20.
	assert.True(t, result.Orders[1].ShippingCost.Equal(d("3.70")))
	assert.True(t, result.Orders[1].Profit.Equal(d("-2.20")), "profit %s", result.Orders[1].Profit)

	// Period totals.
	assert.True(t, result.Totals.Revenue.Equal(d("18.00")))
	assert.True(t, result.Totals.ShippingCost.Equal(d("9.19")))
	assert.True(t, result.Totals.Profit.Equal(d("-0.69")), "profit %s", result.Totals.Profit)
	assert.Equal(t, 2, result.Totals.OrderCount)

	// Negative period profit: zero coverage, deficit surfaced.
	assert.True(t, result.Coverage.Warehouse.CoveragePct.IsZero())
	assert.True(t, result.Coverage.NetProfit.IsZero())
	assert.True(t, result.Coverage.Deficit.Equal(d("0.69")))
}

func TestCalculatorService_Calculate_ProfitablePeriod(t *testing.T) {
	orders := []*models.Order{
		{
			ID: 1, Reference: "ORD-A", Status: models.OrderStatusDelivered,
			Items: []models.OrderItem{
				// Heavy margin line, 0.5kg → Hermes 3.70 fallback.
				{ProductID: 1, Quantity: 1, PricePerUnit: d("60.00")},
			},
		},
	}

	svc := NewCalculatorService(
		&fakePeriodStore{orders: orders},
		testProducts(),
		&fakeSettingsStore{settings: &models.CostSettings{
			AdminUserID:          1,
			WarehouseCost:        d("20"),
			IncomingShippingCost: d("0"),
		}},
	)

	result, err := svc.Calculate(1, 2026, 8)
	require.NoError(t, err)

	// profit = 60 - 1.50 - 3.70 = 54.80; costs = 20 + 3.70 = 23.70.
	assert.True(t, result.Totals.Profit.Equal(d("54.80")))
	assert.True(t, result.Coverage.Warehouse.CoveragePct.Equal(d("100")))
	assert.True(t, result.Coverage.NetProfit.Equal(d("31.10")), "net %s", result.Coverage.NetProfit)
}

func TestCalculatorService_Calculate_Idempotent(t *testing.T) {
	svc := NewCalculatorService(
		&fakePeriodStore{},
		testProducts(),
		&fakeSettingsStore{settings: &models.CostSettings{AdminUserID: 1,
			WarehouseCost: d("0"), IncomingShippingCost: d("0")}},
	)

	first, err := svc.Calculate(1, 2026, 8)
	require.NoError(t, err)
	second, err := svc.Calculate(1, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, first.Coverage, second.Coverage)
}
