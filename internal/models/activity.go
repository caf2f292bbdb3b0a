package models

import "time"

// Activity log actions.
const (
	ActivityAdded    = "added"
	ActivityModified = "modified"
	ActivityRemoved  = "removed"
)

// DefaultAdminName attributes log entries when no acting admin is supplied.
const DefaultAdminName = "Admin"

// ActivityLogEntry is one append-only audit record. The resident name is
// captured as free text, not a foreign key, so the trail survives renames
// and deletions. Entries are never updated or deleted by the application.
type ActivityLogEntry struct {
	ID            string    `db:"id" json:"id"`
	ResidentName  string    `db:"resident_name" json:"resident_name"`
	Action        string    `db:"action" json:"action"`
	AdminUsername string    `db:"admin_username" json:"admin_username"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
