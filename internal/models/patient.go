package models

import "time"

// Patient is a care recipient registered under an institution. Orders
// always reference the patient they are placed for.
type Patient struct {
	ID            int       `db:"id" json:"id"`
	InstitutionID int       `db:"institution_id" json:"institutionId"`
	FirstName     string    `db:"first_name" json:"firstName"`
	LastName      string    `db:"last_name" json:"lastName"`
	DateOfBirth   *string   `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Room          string    `db:"room" json:"room"`
	Notes         string    `db:"notes" json:"notes"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
