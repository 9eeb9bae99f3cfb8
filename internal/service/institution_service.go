package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// InstitutionService covers admin-side customer management and the
// institution-side worker credential management.
type InstitutionService struct {
	institutionRepo *repository.InstitutionRepository
	workerRepo      *repository.WorkerRepository
	patientRepo     *repository.PatientRepository
}

// NewInstitutionService constructs an InstitutionService.
func NewInstitutionService(
	institutionRepo *repository.InstitutionRepository,
	workerRepo *repository.WorkerRepository,
	patientRepo *repository.PatientRepository,
) *InstitutionService {
	return &InstitutionService{
		institutionRepo: institutionRepo,
		workerRepo:      workerRepo,
		patientRepo:     patientRepo,
	}
}

// List returns all institutions for the admin app.
func (s *InstitutionService) List() ([]*models.Institution, error) {
	return s.institutionRepo.List()
}

// Get returns one institution.
func (s *InstitutionService) Get(id int) (*models.Institution, error) {
	return s.institutionRepo.GetByID(id)
}

// UpdateInstitutionRequest carries admin-editable institution fields.
type UpdateInstitutionRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	IsActive      *bool  `json:"isActive"`
}

// Update applies admin edits to an institution.
func (s *InstitutionService) Update(id int, req *UpdateInstitutionRequest) (*models.Institution, error) {
	inst, err := s.institutionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	inst.Name = req.Name
	inst.ContactPerson = req.ContactPerson
	inst.Phone = req.Phone
	inst.Street = req.Street
	inst.PostalCode = req.PostalCode
	inst.City = req.City
	if req.IsActive != nil {
		inst.IsActive = *req.IsActive
	}

	if err := s.institutionRepo.Update(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// WorkerCredentials is returned exactly once at worker creation; the
// secret is stored only as a bcrypt hash.
type WorkerCredentials struct {
	Worker   *models.Worker `json:"worker"`
	LoginKey string         `json:"loginKey"`
	Secret   string         `json:"secret"`
}

// CreateWorker issues a new patient-scoped worker credential for an
// institution. The patient must belong to the institution.
func (s *InstitutionService) CreateWorker(institutionID, patientID int, label string) (*WorkerCredentials, error) {
	if _, err := s.patientRepo.GetByID(institutionID, patientID); err != nil {
		return nil, utils.ErrPatientNotFound
	}

	loginKey, err := utils.GenerateWorkerKey()
	if err != nil {
		return nil, err
	}
	secret, err := utils.GenerateWorkerSecret()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	worker := &models.Worker{
		InstitutionID: institutionID,
		PatientID:     patientID,
		LoginKey:      loginKey,
		SecretHash:    string(hash),
		Label:         label,
	}
	if err := s.workerRepo.Create(worker); err != nil {
		return nil, err
	}

	return &WorkerCredentials{Worker: worker, LoginKey: loginKey, Secret: secret}, nil
}

// ListWorkers returns an institution's worker credentials.
func (s *InstitutionService) ListWorkers(institutionID int) ([]*models.Worker, error) {
	return s.workerRepo.ListByInstitution(institutionID)
}

// DeactivateWorker disables a worker credential.
func (s *InstitutionService) DeactivateWorker(institutionID, workerID int) error {
	return s.workerRepo.Deactivate(institutionID, workerID)
}
