package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingLocked reports whether the shipping selection may no longer be
// changed for an order in this status.
func (s OrderStatus) ShippingLocked() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// Order is a purchase placed by an institution for one of its patients.
// SelectedShippingCarrier/Price are set once an admin picks a shipping
// option on the calculator page and become immutable after shipping.
type Order struct {
	ID                      int              `db:"id" json:"id"`
	Reference               string           `db:"reference" json:"reference"`
	InstitutionID           int              `db:"institution_id" json:"institutionId"`
	PatientID               int              `db:"patient_id" json:"patientId"`
	Status                  OrderStatus      `db:"status" json:"status"`
	SelectedShippingCarrier *string          `db:"selected_shipping_carrier" json:"selectedShippingCarrier,omitempty"`
	SelectedShippingPrice   *decimal.Decimal `db:"selected_shipping_price" json:"selectedShippingPrice,omitempty"`
	Notes                   string           `db:"notes" json:"notes"`
	CreatedAt               time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt               time.Time        `db:"updated_at" json:"updatedAt"`

	// Items are loaded separately and embedded in responses.
	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a single order line. PricePerUnit is snapshotted from the
// catalog at order time; purchase price and weight are not, they are
// resolved from the live catalog whenever the calculator runs.
type OrderItem struct {
	ID           int             `db:"id" json:"id"`
	OrderID      int             `db:"order_id" json:"-"`
	ProductID    int             `db:"product_id" json:"productId"`
	Quantity     int             `db:"quantity" json:"quantity"`
	PricePerUnit decimal.Decimal `db:"price_per_unit" json:"pricePerUnit"`
}
