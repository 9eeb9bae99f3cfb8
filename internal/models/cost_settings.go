package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostSettings holds the fixed cost buckets an admin maintains for the
// calculator page: the warehouse running cost and the incoming shipping
// cost for the period. One row per admin user so concurrent admins do not
// overwrite each other.
type CostSettings struct {
	ID                   int             `db:"id" json:"-"`
	AdminUserID          int             `db:"admin_user_id" json:"-"`
	WarehouseCost        decimal.Decimal `db:"warehouse_cost" json:"warehouseCost"`
	IncomingShippingCost decimal.Decimal `db:"incoming_shipping_cost" json:"incomingShippingCost"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updatedAt"`
}
