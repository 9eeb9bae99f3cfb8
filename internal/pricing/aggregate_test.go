package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() map[int]*models.Product {
	return map[int]*models.Product{
		1: {ID: 1, Name: "Wound dressing", PurchasePrice: d("1.50"), SalePrice: d("3.00"),
			Weight: d("0.5"), WeightUnit: models.WeightUnitKilogram},
		2: {ID: 2, Name: "Skin cream", PurchasePrice: d("5.00"), SalePrice: d("9.00"),
			Weight: d("1000"), WeightUnit: models.WeightUnitGram},
	}
}

func TestAggregateOrder_TotalsAndGramConversion(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
		{ProductID: 2, Quantity: 1, PricePerUnit: d("9.00")},
	}

	totals := AggregateOrder(items, testCatalog())

	// 2×0.5kg + 1×1000g = 2.0kg
	assert.True(t, totals.TotalWeightKg.Equal(d("2.0")), "weight %s", totals.TotalWeightKg)
	assert.True(t, totals.PurchaseCost.Equal(d("8.00")), "cost %s", totals.PurchaseCost)
	assert.True(t, totals.Revenue.Equal(d("15.00")), "revenue %s", totals.Revenue)
	assert.Empty(t, totals.UnresolvedProductIDs)
}

func TestAggregateOrder_GramWeightPerUnit(t *testing.T) {
	catalog := map[int]*models.Product{
		7: {ID: 7, PurchasePrice: d("1"), SalePrice: d("2"),
			Weight: d("500"), WeightUnit: models.WeightUnitGram},
	}
	totals := AggregateOrder([]models.OrderItem{{ProductID: 7, Quantity: 1, PricePerUnit: d("2")}}, catalog)

	// 500g is 0.5kg, not 500kg.
	assert.True(t, totals.TotalWeightKg.Equal(d("0.5")), "weight %s", totals.TotalWeightKg)
}

func TestAggregateOrder_UnresolvedProductsCollected(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
		{ProductID: 99, Quantity: 5, PricePerUnit: d("4.00")},
	}

	totals := AggregateOrder(items, testCatalog())

	assert.Equal(t, []int{99}, totals.UnresolvedProductIDs)
	// The resolvable line still aggregates.
	assert.True(t, totals.TotalWeightKg.Equal(d("1.0")))
	assert.True(t, totals.Revenue.Equal(d("6.00")))
}

func TestAggregateOrder_EmptyOrder(t *testing.T) {
	totals := AggregateOrder(nil, testCatalog())
	assert.True(t, totals.TotalWeightKg.IsZero())
	assert.True(t, totals.PurchaseCost.IsZero())
	assert.True(t, totals.Revenue.IsZero())
}
