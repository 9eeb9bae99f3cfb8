package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// PatientRepository provides data access methods for the patients table.
// All queries are institution-scoped so one institution can never read or
// touch another institution's patients.
type PatientRepository struct {
	db *sqlx.DB
}

// NewPatientRepository creates a new PatientRepository.
func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = `id, institution_id, first_name, last_name, date_of_birth,
	room, notes, is_active, created_at, updated_at`

// GetByID finds a patient belonging to the given institution.
func (r *PatientRepository) GetByID(institutionID, id int) (*models.Patient, error) {
	var p models.Patient
	err := r.db.Get(&p, `SELECT `+patientColumns+`
		FROM patients WHERE id = $1 AND institution_id = $2 LIMIT 1`, id, institutionID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByInstitution retrieves all patients of one institution.
func (r *PatientRepository) ListByInstitution(institutionID int) ([]*models.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients WHERE institution_id = $1
		ORDER BY last_name, first_name`

	var patients []*models.Patient
	if err := r.db.Select(&patients, query, institutionID); err != nil {
		return nil, err
	}
	return patients, nil
}

// Create inserts a new patient.
func (r *PatientRepository) Create(p *models.Patient) error {
	query := `INSERT INTO patients (institution_id, first_name, last_name, date_of_birth, room, notes, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, true)
	          RETURNING id, is_active, created_at, updated_at`

	return r.db.QueryRowx(query,
		p.InstitutionID,
		p.FirstName,
		p.LastName,
		p.DateOfBirth,
		p.Room,
		p.Notes,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates a patient record, scoped to its institution.
func (r *PatientRepository) Update(p *models.Patient) error {
	query := `UPDATE patients
	          SET first_name = $1, last_name = $2, date_of_birth = $3,
	              room = $4, notes = $5, is_active = $6, updated_at = NOW()
	          WHERE id = $7 AND institution_id = $8
	          RETURNING updated_at`

	return r.db.QueryRowx(query,
		p.FirstName,
		p.LastName,
		p.DateOfBirth,
		p.Room,
		p.Notes,
		p.IsActive,
		p.ID,
		p.InstitutionID,
	).Scan(&p.UpdatedAt)
}
