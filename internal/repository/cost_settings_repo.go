package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// CostSettingsRepository persists the per-admin cost buckets used by the
// calculator page. One row per admin user so concurrent admins keep
// independent settings.
type CostSettingsRepository struct {
	db *sqlx.DB
}

// NewCostSettingsRepository creates a new CostSettingsRepository.
func NewCostSettingsRepository(db *sqlx.DB) *CostSettingsRepository {
	return &CostSettingsRepository{db: db}
}

// GetByAdmin returns the cost settings for one admin user. A missing row
// yields zeroed buckets rather than an error.
func (r *CostSettingsRepository) GetByAdmin(adminUserID int) (*models.CostSettings, error) {
	var s models.CostSettings
	err := r.db.Get(&s, `SELECT id, admin_user_id, warehouse_cost, incoming_shipping_cost, updated_at
		FROM cost_settings WHERE admin_user_id = $1 LIMIT 1`, adminUserID)
	if err == sql.ErrNoRows {
		return &models.CostSettings{
			AdminUserID:          adminUserID,
			WarehouseCost:        decimal.Zero,
			IncomingShippingCost: decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert stores the cost settings for one admin user.
func (r *CostSettingsRepository) Upsert(s *models.CostSettings) error {
	query := `INSERT INTO cost_settings (admin_user_id, warehouse_cost, incoming_shipping_cost)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (admin_user_id) DO UPDATE
	          SET warehouse_cost = EXCLUDED.warehouse_cost,
	              incoming_shipping_cost = EXCLUDED.incoming_shipping_cost,
	              updated_at = NOW()
	          RETURNING id, updated_at`

	return r.db.QueryRowx(query,
		s.AdminUserID,
		s.WarehouseCost,
		s.IncomingShippingCost,
	).Scan(&s.ID, &s.UpdatedAt)
}
