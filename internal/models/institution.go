package models

import "time"

// Institution represents a care-facility customer account. Institutions
// place orders on behalf of their patients.
type Institution struct {
	ID            int        `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Name          string     `db:"name" json:"name"`
	ContactPerson string     `db:"contact_person" json:"contactPerson"`
	Phone         string     `db:"phone" json:"phone"`
	Street        string     `db:"street" json:"street"`
	PostalCode    string     `db:"postal_code" json:"postalCode"`
	City          string     `db:"city" json:"city"`
	IsVerified    bool       `db:"is_verified" json:"isVerified"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	VerifiedAt    *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}
