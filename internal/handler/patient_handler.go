package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// PatientHandler covers the institution's patient roster.
type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// List handles GET /v1/patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientService.List(c.GetInt("institution_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list patients")
		return
	}
	utils.Success(c, 200, "Patients retrieved", patients)
}

// Get handles GET /v1/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid patient id")
		return
	}

	patient, err := h.patientService.Get(c.GetInt("institution_id"), id)
	if err != nil {
		utils.Error(c, 404, "PATIENT_NOT_FOUND", "Patient not found")
		return
	}
	utils.Success(c, 200, "Patient retrieved", patient)
}

// Create handles POST /v1/patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req service.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	patient, err := h.patientService.Create(c.GetInt("institution_id"), &req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create patient")
		return
	}
	utils.Success(c, 201, "Patient created", patient)
}

// Update handles PUT /v1/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid patient id")
		return
	}

	var req service.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	patient, err := h.patientService.Update(c.GetInt("institution_id"), id, &req)
	if err != nil {
		utils.Error(c, 404, "PATIENT_NOT_FOUND", "Patient not found")
		return
	}
	utils.Success(c, 200, "Patient updated", patient)
}
