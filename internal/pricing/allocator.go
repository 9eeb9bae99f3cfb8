package pricing

import "github.com/shopspring/decimal"

// Bucket is one fixed cost bucket and how much of it accumulated profit
// covers.
type Bucket struct {
	Total       decimal.Decimal `json:"total"`
	Filled      decimal.Decimal `json:"filled"`
	CoveragePct decimal.Decimal `json:"coveragePct"`
}

// CoverageReport distributes period profit across the warehouse and
// shipping cost buckets. NetProfit is only non-zero once both buckets are
// fully covered. Deficit carries the loss magnitude when profit is
// negative, alongside the 0% coverage figures.
type CoverageReport struct {
	Profit    decimal.Decimal `json:"profit"`
	Warehouse Bucket          `json:"warehouse"`
	Shipping  Bucket          `json:"shipping"`
	NetProfit decimal.Decimal `json:"netProfit"`
	Deficit   decimal.Decimal `json:"deficit"`
}

// Allocate computes the cost-coverage report for a period.
//
// The shipping bucket is the fixed incoming shipping cost plus the sum of
// per-order shipping costs. Profit fills both buckets proportionally
// (fillRatio = profit / totalCosts, capped at 1); whatever exceeds the
// buckets is net profit. Idempotent, no hidden state.
func Allocate(profit, warehouseCost, incomingShippingCost, perOrderShippingSum decimal.Decimal) CoverageReport {
	shippingTotal := incomingShippingCost.Add(perOrderShippingSum)
	totalCosts := warehouseCost.Add(shippingTotal)

	report := CoverageReport{
		Profit:    profit,
		Warehouse: Bucket{Total: warehouseCost, Filled: decimal.Zero, CoveragePct: decimal.Zero},
		Shipping:  Bucket{Total: shippingTotal, Filled: decimal.Zero, CoveragePct: decimal.Zero},
		NetProfit: decimal.Zero,
		Deficit:   decimal.Zero,
	}

	if profit.Sign() <= 0 {
		report.Deficit = profit.Neg()
		return report
	}

	if totalCosts.Sign() == 0 {
		// Nothing to cover, everything is net profit.
		report.NetProfit = profit
		return report
	}

	fillRatio := profit.Div(totalCosts)
	if fillRatio.GreaterThan(decimal.NewFromInt(1)) {
		fillRatio = decimal.NewFromInt(1)
	}

	report.Warehouse.Filled = warehouseCost.Mul(fillRatio)
	report.Warehouse.CoveragePct = fillRatio.Mul(decimal.NewFromInt(100))
	report.Shipping.Filled = shippingTotal.Mul(fillRatio)
	report.Shipping.CoveragePct = report.Warehouse.CoveragePct

	if net := profit.Sub(report.Warehouse.Filled).Sub(report.Shipping.Filled); net.Sign() > 0 {
		report.NetProfit = net
	}
	return report
}
