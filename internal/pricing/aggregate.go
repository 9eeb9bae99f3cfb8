package pricing

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// OrderTotals is the result of aggregating an order's line items against
// the current catalog.
type OrderTotals struct {
	TotalWeightKg decimal.Decimal `json:"totalWeightKg"`
	PurchaseCost  decimal.Decimal `json:"purchaseCost"`
	Revenue       decimal.Decimal `json:"revenue"`

	// UnresolvedProductIDs lists line items whose product no longer exists
	// in the catalog. Their weight and cost are missing from the totals, so
	// callers should surface this instead of treating the totals as exact.
	UnresolvedProductIDs []int `json:"unresolvedProductIds,omitempty"`
}

// AggregateOrder computes total shipment weight, purchase cost and revenue
// for one order. Products are resolved through the catalog map; gram
// weights are normalized to kilograms. A line item whose product cannot be
// resolved is collected in UnresolvedProductIDs and skipped, the rest of
// the order still aggregates.
func AggregateOrder(items []models.OrderItem, catalog map[int]*models.Product) OrderTotals {
	totals := OrderTotals{
		TotalWeightKg: decimal.Zero,
		PurchaseCost:  decimal.Zero,
		Revenue:       decimal.Zero,
	}

	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok {
			log.Warn().
				Int("product_id", item.ProductID).
				Int("order_id", item.OrderID).
				Msg("order item references unknown product, excluded from totals")
			totals.UnresolvedProductIDs = append(totals.UnresolvedProductIDs, item.ProductID)
			continue
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.TotalWeightKg = totals.TotalWeightKg.Add(product.WeightKg().Mul(qty))
		totals.PurchaseCost = totals.PurchaseCost.Add(product.PurchasePrice.Mul(qty))
		totals.Revenue = totals.Revenue.Add(item.PricePerUnit.Mul(qty))
	}

	return totals
}
