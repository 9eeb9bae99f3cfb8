package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an immutable billing record created from an order. Totals are
// snapshotted at issue time so later catalog or shipping edits cannot change
// an issued invoice.
type Invoice struct {
	ID            int             `db:"id" json:"id"`
	Number        string          `db:"number" json:"number"`
	OrderID       int             `db:"order_id" json:"orderId"`
	InstitutionID int             `db:"institution_id" json:"institutionId"`
	Revenue       decimal.Decimal `db:"revenue" json:"revenue"`
	ShippingCost  decimal.Decimal `db:"shipping_cost" json:"shippingCost"`
	Total         decimal.Decimal `db:"total" json:"total"`
	IssuedAt      time.Time       `db:"issued_at" json:"issuedAt"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}
