package models

import "time"

// Admin is a health worker account. Provisioning is handled outside this
// service; records only reference admins for attribution.
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
