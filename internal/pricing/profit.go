package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// OrderCalculation is the full derived result for one order. It is
// recomputed on every calculator load and never persisted.
type OrderCalculation struct {
	OrderID          int                `json:"orderId"`
	Reference        string             `json:"reference"`
	Status           models.OrderStatus `json:"status"`
	Totals           OrderTotals        `json:"totals"`
	Candidates       []ShippingOption   `json:"candidates"`
	ShippingCost     decimal.Decimal    `json:"shippingCost"`
	ShippingSelected bool               `json:"shippingSelected"`
	Profit           decimal.Decimal    `json:"profit"`
}

// Profit is revenue minus purchase cost minus shipping.
func Profit(revenue, purchaseCost, shippingCost decimal.Decimal) decimal.Decimal {
	return revenue.Sub(purchaseCost).Sub(shippingCost)
}

// CalculateOrder aggregates one order and derives its shipping candidates
// and profit. Shipping cost priority: the option already selected on the
// order, else the cheapest qualifying candidate, else zero.
func CalculateOrder(order *models.Order, catalog map[int]*models.Product) OrderCalculation {
	totals := AggregateOrder(order.Items, catalog)
	candidates := CheapestOptions(totals.TotalWeightKg)

	shippingCost := decimal.Zero
	selected := false
	switch {
	case order.SelectedShippingPrice != nil:
		shippingCost = *order.SelectedShippingPrice
		selected = true
	case len(candidates) > 0:
		shippingCost = candidates[0].Price
	}

	return OrderCalculation{
		OrderID:          order.ID,
		Reference:        order.Reference,
		Status:           order.Status,
		Totals:           totals,
		Candidates:       candidates,
		ShippingCost:     shippingCost,
		ShippingSelected: selected,
		Profit:           Profit(totals.Revenue, totals.PurchaseCost, shippingCost),
	}
}
