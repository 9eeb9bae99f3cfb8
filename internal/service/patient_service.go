package service

import (
	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
)

// PatientService manages an institution's patients.
type PatientService struct {
	patientRepo *repository.PatientRepository
}

// NewPatientService constructs a PatientService.
func NewPatientService(patientRepo *repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// PatientRequest carries create/update payloads.
type PatientRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	DateOfBirth *string `json:"dateOfBirth"`
	Room        string  `json:"room"`
	Notes       string  `json:"notes"`
	IsActive    *bool   `json:"isActive"`
}

// List returns an institution's patients.
func (s *PatientService) List(institutionID int) ([]*models.Patient, error) {
	return s.patientRepo.ListByInstitution(institutionID)
}

// Get returns one patient, scoped to the institution.
func (s *PatientService) Get(institutionID, id int) (*models.Patient, error) {
	return s.patientRepo.GetByID(institutionID, id)
}

// Create registers a new patient under the institution.
func (s *PatientService) Create(institutionID int, req *PatientRequest) (*models.Patient, error) {
	p := &models.Patient{
		InstitutionID: institutionID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Room:          req.Room,
		Notes:         req.Notes,
	}
	if err := s.patientRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies edits to a patient.
func (s *PatientService) Update(institutionID, id int, req *PatientRequest) (*models.Patient, error) {
	p, err := s.patientRepo.GetByID(institutionID, id)
	if err != nil {
		return nil, err
	}

	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.DateOfBirth = req.DateOfBirth
	p.Room = req.Room
	p.Notes = req.Notes
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.patientRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}
