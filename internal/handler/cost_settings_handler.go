package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// CostSettingsHandler manages the admin's monthly cost buckets.
type CostSettingsHandler struct {
	settingsService *service.CostSettingsService
}

func NewCostSettingsHandler(settingsService *service.CostSettingsService) *CostSettingsHandler {
	return &CostSettingsHandler{settingsService: settingsService}
}

// Get handles GET /v1/admin/cost-settings
func (h *CostSettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cost settings")
		return
	}
	utils.Success(c, 200, "Cost settings retrieved", settings)
}

// Update handles PUT /v1/admin/cost-settings
func (h *CostSettingsHandler) Update(c *gin.Context) {
	var req service.CostSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.WarehouseCost.IsNegative() || req.IncomingShippingCost.IsNegative() {
		utils.Error(c, 400, "INVALID_REQUEST", "Costs must not be negative")
		return
	}

	settings, err := h.settingsService.Update(c.GetInt("user_id"), &req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save cost settings")
		return
	}
	utils.Success(c, 200, "Cost settings saved", settings)
}
