package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/pricing"
)

// PeriodOrderStore loads the order set a calculation runs over.
type PeriodOrderStore interface {
	ListByPeriod(year, month int) ([]*models.Order, error)
}

// StockLoader loads the full catalog once per calculation pass.
type StockLoader interface {
	GetAll() ([]models.Product, error)
}

// CostSettingsStore loads the admin's persisted cost buckets.
type CostSettingsStore interface {
	GetByAdmin(adminUserID int) (*models.CostSettings, error)
}

// CalculatorService produces the admin calculator page payload: per-order
// shipping candidates and profit, plus the portfolio cost-coverage report.
// Every call recomputes from scratch; nothing here is persisted.
type CalculatorService struct {
	orders   PeriodOrderStore
	stock    StockLoader
	settings CostSettingsStore
}

// NewCalculatorService constructs a CalculatorService.
func NewCalculatorService(orders PeriodOrderStore, stock StockLoader, settings CostSettingsStore) *CalculatorService {
	return &CalculatorService{orders: orders, stock: stock, settings: settings}
}

// CalculationResult is the full calculator payload for one period.
type CalculationResult struct {
	Year     int                        `json:"year"`
	Month    int                        `json:"month"`
	Orders   []pricing.OrderCalculation `json:"orders"`
	Totals   PeriodTotals               `json:"totals"`
	Coverage pricing.CoverageReport     `json:"coverage"`
	Settings *models.CostSettings       `json:"costSettings"`
}

// PeriodTotals sums the per-order figures.
type PeriodTotals struct {
	Revenue      decimal.Decimal `json:"revenue"`
	PurchaseCost decimal.Decimal `json:"purchaseCost"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Profit       decimal.Decimal `json:"profit"`
	OrderCount   int             `json:"orderCount"`
}

// Calculate runs the full pipeline for one month: catalog load, per-order
// aggregation and profit, then cost-bucket allocation against the admin's
// settings. Defaults to the current month when year or month is zero.
func (s *CalculatorService) Calculate(adminUserID, year, month int) (*CalculationResult, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	products, err := s.stock.GetAll()
	if err != nil {
		return nil, err
	}
	catalog := make(map[int]*models.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}

	orders, err := s.orders.ListByPeriod(year, month)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetByAdmin(adminUserID)
	if err != nil {
		return nil, err
	}

	result := &CalculationResult{
		Year:     year,
		Month:    month,
		Orders:   make([]pricing.OrderCalculation, 0, len(orders)),
		Settings: settings,
		Totals: PeriodTotals{
			Revenue:      decimal.Zero,
			PurchaseCost: decimal.Zero,
			ShippingCost: decimal.Zero,
			Profit:       decimal.Zero,
			OrderCount:   len(orders),
		},
	}

	for _, order := range orders {
		calc := pricing.CalculateOrder(order, catalog)
		result.Orders = append(result.Orders, calc)

		result.Totals.Revenue = result.Totals.Revenue.Add(calc.Totals.Revenue)
		result.Totals.PurchaseCost = result.Totals.PurchaseCost.Add(calc.Totals.PurchaseCost)
		result.Totals.ShippingCost = result.Totals.ShippingCost.Add(calc.ShippingCost)
		result.Totals.Profit = result.Totals.Profit.Add(calc.Profit)
	}

	result.Coverage = pricing.Allocate(
		result.Totals.Profit,
		settings.WarehouseCost,
		settings.IncomingShippingCost,
		result.Totals.ShippingCost,
	)
	return result, nil
}
