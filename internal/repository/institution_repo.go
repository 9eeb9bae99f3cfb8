package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// InstitutionRepository provides data access methods for the institutions table.
type InstitutionRepository struct {
	db *sqlx.DB
}

// NewInstitutionRepository creates a new InstitutionRepository.
func NewInstitutionRepository(db *sqlx.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

const institutionColumns = `id, email, password_hash, name, contact_person, phone,
	street, postal_code, city, is_verified, is_active, verified_at, created_at, updated_at`

// GetByID finds an institution by numeric id.
func (r *InstitutionRepository) GetByID(id int) (*models.Institution, error) {
	var inst models.Institution
	err := r.db.Get(&inst, `SELECT `+institutionColumns+` FROM institutions WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetByEmail finds an institution by login email.
func (r *InstitutionRepository) GetByEmail(email string) (*models.Institution, error) {
	var inst models.Institution
	err := r.db.Get(&inst, `SELECT `+institutionColumns+` FROM institutions WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &inst, nil
}

// Create inserts a new, unverified institution account.
func (r *InstitutionRepository) Create(inst *models.Institution) error {
	query := `INSERT INTO institutions (email, password_hash, name, contact_person, phone,
	              street, postal_code, city, is_verified, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, true)
	          RETURNING id, is_verified, is_active, created_at, updated_at`

	return r.db.QueryRowx(query,
		inst.Email,
		inst.PasswordHash,
		inst.Name,
		inst.ContactPerson,
		inst.Phone,
		inst.Street,
		inst.PostalCode,
		inst.City,
	).Scan(&inst.ID, &inst.IsVerified, &inst.IsActive, &inst.CreatedAt, &inst.UpdatedAt)
}

// Update updates contact and address fields of an institution.
func (r *InstitutionRepository) Update(inst *models.Institution) error {
	query := `UPDATE institutions
	          SET name = $1, contact_person = $2, phone = $3,
	              street = $4, postal_code = $5, city = $6, is_active = $7,
	              updated_at = NOW()
	          WHERE id = $8
	          RETURNING updated_at`

	return r.db.QueryRowx(query,
		inst.Name,
		inst.ContactPerson,
		inst.Phone,
		inst.Street,
		inst.PostalCode,
		inst.City,
		inst.IsActive,
		inst.ID,
	).Scan(&inst.UpdatedAt)
}

// MarkVerified flags an institution as email-verified.
func (r *InstitutionRepository) MarkVerified(id int, at time.Time) error {
	_, err := r.db.Exec(`UPDATE institutions
	          SET is_verified = true, verified_at = $1, updated_at = NOW()
	          WHERE id = $2`, at, id)
	return err
}

// List retrieves all institutions, newest first.
func (r *InstitutionRepository) List() ([]*models.Institution, error) {
	query := `SELECT ` + institutionColumns + ` FROM institutions ORDER BY created_at DESC`

	var institutions []*models.Institution
	if err := r.db.Select(&institutions, query); err != nil {
		return nil, err
	}
	return institutions, nil
}
