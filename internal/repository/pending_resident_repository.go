package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

// PendingResidentRepository manages self-submitted registrations awaiting
// review. The PWD flag is coerced to 0/1 at this storage boundary.
type PendingResidentRepository struct {
	db *sqlx.DB
}

// NewPendingResidentRepository constructs a PendingResidentRepository.
func NewPendingResidentRepository(db *sqlx.DB) *PendingResidentRepository {
	return &PendingResidentRepository{db: db}
}

// Create inserts a pending entry and fills in its generated id.
func (r *PendingResidentRepository) Create(ctx context.Context, pending *models.PendingResident) error {
	if pending.SubmittedAt.IsZero() {
		pending.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO pending_residents (resident_id, is_pwd, height_cm, weight_kg, bmi, health_condition, allergies, verified_by, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		pending.ResidentID,
		boolToInt(pending.IsPWD),
		pending.HeightCm,
		pending.WeightKg,
		pending.BMI,
		pending.HealthCondition,
		pending.Allergies,
		pending.VerifiedBy,
		pending.SubmittedAt,
	).Scan(&pending.ID); err != nil {
		return fmt.Errorf("create pending resident: %w", err)
	}
	return nil
}

// List returns all pending entries joined with resident identity, newest
// submission first.
func (r *PendingResidentRepository) List(ctx context.Context) ([]models.PendingResidentDetail, error) {
	const query = `SELECT p.id, p.resident_id, (p.is_pwd = 1) AS is_pwd, p.height_cm, p.weight_kg, p.bmi, p.health_condition, p.allergies, p.verified_by, p.submitted_at,
        r.first_name, r.middle_name, r.last_name, r.suffix, r.sex, r.birthdate, r.street
        FROM pending_residents p
        JOIN residents r ON r.resident_id = p.resident_id
        ORDER BY p.submitted_at DESC`
	var entries []models.PendingResidentDetail
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list pending residents: %w", err)
	}
	return entries, nil
}

// FindDetail fetches one pending entry joined with its resident's name.
// The joined lookup must happen before any deletion in the approval and
// rejection flows; it returns sql.ErrNoRows when the entry is absent.
func (r *PendingResidentRepository) FindDetail(ctx context.Context, id int64) (*models.PendingResidentDetail, error) {
	const query = `SELECT p.id, p.resident_id, (p.is_pwd = 1) AS is_pwd, p.height_cm, p.weight_kg, p.bmi, p.health_condition, p.allergies, p.verified_by, p.submitted_at,
        r.first_name, r.middle_name, r.last_name, r.suffix, r.sex, r.birthdate, r.street
        FROM pending_residents p
        JOIN residents r ON r.resident_id = p.resident_id
        WHERE p.id = $1`
	var detail models.PendingResidentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Delete removes one pending entry.
func (r *PendingResidentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM pending_residents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete pending resident: %w", err)
	}
	return nil
}

// DeleteByResident removes any pending entries for the given resident.
func (r *PendingResidentRepository) DeleteByResident(ctx context.Context, residentID string) error {
	const query = `DELETE FROM pending_residents WHERE resident_id = $1`
	if _, err := r.db.ExecContext(ctx, query, residentID); err != nil {
		return fmt.Errorf("delete pending by resident: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
