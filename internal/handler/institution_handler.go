package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// InstitutionHandler covers the institution self-service endpoints (own
// profile, worker sub-accounts) and the admin customer management views.
type InstitutionHandler struct {
	institutionService *service.InstitutionService
}

func NewInstitutionHandler(institutionService *service.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: institutionService}
}

// Me handles GET /v1/institutions/me
func (h *InstitutionHandler) Me(c *gin.Context) {
	inst, err := h.institutionService.Get(c.GetInt("institution_id"))
	if err != nil {
		utils.Error(c, 404, "INSTITUTION_NOT_FOUND", "Institution not found")
		return
	}
	utils.Success(c, 200, "Institution retrieved", inst)
}

// CreateWorker handles POST /v1/institutions/me/workers
func (h *InstitutionHandler) CreateWorker(c *gin.Context) {
	var req struct {
		PatientID int    `json:"patientId" binding:"required"`
		Label     string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	creds, err := h.institutionService.CreateWorker(c.GetInt("institution_id"), req.PatientID, req.Label)
	if err != nil {
		if err == utils.ErrPatientNotFound {
			utils.Error(c, 404, "PATIENT_NOT_FOUND", "Patient not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create worker account")
		return
	}

	// LoginKey and Secret are returned exactly once; only the hash is
	// stored.
	utils.Success(c, 201, "Worker account created", creds)
}

// ListWorkers handles GET /v1/institutions/me/workers
func (h *InstitutionHandler) ListWorkers(c *gin.Context) {
	workers, err := h.institutionService.ListWorkers(c.GetInt("institution_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list workers")
		return
	}
	utils.Success(c, 200, "Workers retrieved", workers)
}

// DeactivateWorker handles DELETE /v1/institutions/me/workers/:id
func (h *InstitutionHandler) DeactivateWorker(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid worker id")
		return
	}

	if err := h.institutionService.DeactivateWorker(c.GetInt("institution_id"), id); err != nil {
		utils.Error(c, 404, "WORKER_NOT_FOUND", "Worker not found")
		return
	}
	utils.Success(c, 200, "Worker deactivated", nil)
}

// List handles GET /v1/admin/institutions
func (h *InstitutionHandler) List(c *gin.Context) {
	institutions, err := h.institutionService.List()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list institutions")
		return
	}
	utils.Success(c, 200, "Institutions retrieved", institutions)
}

// Get handles GET /v1/admin/institutions/:id
func (h *InstitutionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid institution id")
		return
	}

	inst, err := h.institutionService.Get(id)
	if err != nil {
		utils.Error(c, 404, "INSTITUTION_NOT_FOUND", "Institution not found")
		return
	}
	utils.Success(c, 200, "Institution retrieved", inst)
}

// Update handles PUT /v1/admin/institutions/:id
func (h *InstitutionHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid institution id")
		return
	}

	var req service.UpdateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	inst, err := h.institutionService.Update(id, &req)
	if err != nil {
		utils.Error(c, 404, "INSTITUTION_NOT_FOUND", "Institution not found")
		return
	}
	utils.Success(c, 200, "Institution updated", inst)
}
