package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightUnit enumerates the units a product weight can be stored in.
type WeightUnit string

const (
	WeightUnitGram     WeightUnit = "g"
	WeightUnitKilogram WeightUnit = "kg"
)

// Product represents a catalog item held in the warehouse.
// Purchase price and weight feed the shipping/profit calculator.
type Product struct {
	ID            int             `db:"id" json:"id"`
	SKU           string          `db:"sku" json:"sku"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	Description   string          `db:"description" json:"description"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"salePrice"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	Weight        decimal.Decimal `db:"weight" json:"weight"`
	WeightUnit    WeightUnit      `db:"weight_unit" json:"weightUnit"`
	StockQty      int             `db:"stock_qty" json:"stockQty"`
	ReorderLevel  int             `db:"reorder_level" json:"reorderLevel"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// WeightKg returns the unit weight normalized to kilograms.
func (p *Product) WeightKg() decimal.Decimal {
	if p.WeightUnit == WeightUnitGram {
		return p.Weight.Div(decimal.NewFromInt(1000))
	}
	return p.Weight
}
