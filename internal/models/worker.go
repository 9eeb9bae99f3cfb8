package models

import "time"

// Worker is a restricted-credential sub-account of an institution, scoped
// to exactly one patient. Workers can browse the catalog and place orders
// for their patient only.
type Worker struct {
	ID            int        `db:"id" json:"id"`
	InstitutionID int        `db:"institution_id" json:"institutionId"`
	PatientID     int        `db:"patient_id" json:"patientId"`
	LoginKey      string     `db:"login_key" json:"loginKey,omitempty"`
	SecretHash    string     `db:"secret_hash" json:"-"`
	Label         string     `db:"label" json:"label"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	LastLoginAt   *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}
