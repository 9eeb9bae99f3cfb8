package service

import (
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
)

// CostSettingsService reads and writes the per-admin cost buckets.
type CostSettingsService struct {
	settingsRepo *repository.CostSettingsRepository
}

// NewCostSettingsService constructs a CostSettingsService.
func NewCostSettingsService(settingsRepo *repository.CostSettingsRepository) *CostSettingsService {
	return &CostSettingsService{settingsRepo: settingsRepo}
}

// CostSettingsRequest carries the update payload.
type CostSettingsRequest struct {
	WarehouseCost        decimal.Decimal `json:"warehouseCost" binding:"required"`
	IncomingShippingCost decimal.Decimal `json:"incomingShippingCost" binding:"required"`
}

// Get returns the admin's cost buckets (zeroed when never set).
func (s *CostSettingsService) Get(adminUserID int) (*models.CostSettings, error) {
	return s.settingsRepo.GetByAdmin(adminUserID)
}

// Update stores the admin's cost buckets.
func (s *CostSettingsService) Update(adminUserID int, req *CostSettingsRequest) (*models.CostSettings, error) {
	settings := &models.CostSettings{
		AdminUserID:          adminUserID,
		WarehouseCost:        req.WarehouseCost,
		IncomingShippingCost: req.IncomingShippingCost,
	}
	if err := s.settingsRepo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
