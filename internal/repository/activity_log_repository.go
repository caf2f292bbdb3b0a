package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

// ActivityLogRepository appends to and reads the audit trail. Entries are
// never updated or deleted by the application.
type ActivityLogRepository struct {
	db *sqlx.DB
}

// NewActivityLogRepository constructs an ActivityLogRepository.
func NewActivityLogRepository(db *sqlx.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Insert appends one entry. The creation timestamp is assigned by the store.
func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.AdminUsername == "" {
		entry.AdminUsername = models.DefaultAdminName
	}
	const query = `INSERT INTO activity_logs (id, resident_name, action, admin_username)
        VALUES (:id, :resident_name, :action, :admin_username)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListRecent returns the most recent entries, newest first.
func (r *ActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, resident_name, action, admin_username, created_at
        FROM activity_logs ORDER BY created_at DESC LIMIT $1`
	var entries []models.ActivityLogEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return entries, nil
}
