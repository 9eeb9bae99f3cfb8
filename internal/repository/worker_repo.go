package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// WorkerRepository provides data access methods for worker sub-accounts.
type WorkerRepository struct {
	db *sqlx.DB
}

// NewWorkerRepository creates a new WorkerRepository.
func NewWorkerRepository(db *sqlx.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerColumns = `id, institution_id, patient_id, login_key, secret_hash,
	label, is_active, last_login_at, created_at, updated_at`

// GetByLoginKey finds a worker by its generated login key.
func (r *WorkerRepository) GetByLoginKey(loginKey string) (*models.Worker, error) {
	var w models.Worker
	err := r.db.Get(&w, `SELECT `+workerColumns+` FROM workers WHERE login_key = $1 LIMIT 1`, loginKey)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListByInstitution retrieves all worker accounts of one institution.
func (r *WorkerRepository) ListByInstitution(institutionID int) ([]*models.Worker, error) {
	var workers []*models.Worker
	err := r.db.Select(&workers, `SELECT `+workerColumns+`
		FROM workers WHERE institution_id = $1 ORDER BY created_at DESC`, institutionID)
	if err != nil {
		return nil, err
	}
	return workers, nil
}

// Create inserts a new worker credential.
func (r *WorkerRepository) Create(w *models.Worker) error {
	query := `INSERT INTO workers (institution_id, patient_id, login_key, secret_hash, label, is_active)
	          VALUES ($1, $2, $3, $4, $5, true)
	          RETURNING id, is_active, created_at, updated_at`

	return r.db.QueryRowx(query,
		w.InstitutionID,
		w.PatientID,
		w.LoginKey,
		w.SecretHash,
		w.Label,
	).Scan(&w.ID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
}

// TouchLogin records a successful worker login.
func (r *WorkerRepository) TouchLogin(id int, at time.Time) error {
	_, err := r.db.Exec(`UPDATE workers SET last_login_at = $1, updated_at = NOW() WHERE id = $2`, at, id)
	return err
}

// Deactivate disables a worker credential, scoped to its institution.
func (r *WorkerRepository) Deactivate(institutionID, id int) error {
	_, err := r.db.Exec(`UPDATE workers SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND institution_id = $2`, id, institutionID)
	return err
}
