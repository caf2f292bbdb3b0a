package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

// ResidentRepository manages persistence for resident identity rows.
type ResidentRepository struct {
	db *sqlx.DB
}

// NewResidentRepository constructs a ResidentRepository.
func NewResidentRepository(db *sqlx.DB) *ResidentRepository {
	return &ResidentRepository{db: db}
}

// Create inserts a new resident row.
func (r *ResidentRepository) Create(ctx context.Context, resident *models.Resident) error {
	now := time.Now().UTC()
	if resident.CreatedAt.IsZero() {
		resident.CreatedAt = now
	}
	resident.UpdatedAt = now
	if resident.Barangay == "" {
		resident.Barangay = models.DefaultBarangay
	}
	const query = `INSERT INTO residents (resident_id, first_name, middle_name, last_name, suffix, sex, civil_status, birthdate, contact_number, street, barangay, created_at, updated_at)
        VALUES (:resident_id, :first_name, :middle_name, :last_name, :suffix, :sex, :civil_status, :birthdate, :contact_number, :street, :barangay, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resident); err != nil {
		return fmt.Errorf("create resident: %w", err)
	}
	return nil
}

// Update overwrites the identity fields of an existing resident. The
// resident_id itself is immutable.
func (r *ResidentRepository) Update(ctx context.Context, resident *models.Resident) error {
	resident.UpdatedAt = time.Now().UTC()
	const query = `UPDATE residents SET first_name = :first_name, middle_name = :middle_name, last_name = :last_name, suffix = :suffix, sex = :sex, civil_status = :civil_status, birthdate = :birthdate, contact_number = :contact_number, street = :street, barangay = :barangay, updated_at = :updated_at WHERE resident_id = :resident_id`
	if _, err := r.db.NamedExecContext(ctx, query, resident); err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	return nil
}

// FindByID fetches one resident.
func (r *ResidentRepository) FindByID(ctx context.Context, id string) (*models.Resident, error) {
	const query = `SELECT resident_id, first_name, middle_name, last_name, suffix, sex, civil_status, birthdate, contact_number, street, barangay, created_at, updated_at
        FROM residents WHERE resident_id = $1`
	var resident models.Resident
	if err := r.db.GetContext(ctx, &resident, query, id); err != nil {
		return nil, err
	}
	return &resident, nil
}

// List returns residents matching the provided filters, newest first.
func (r *ResidentRepository) List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error) {
	base := "FROM residents"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Street != "" {
		conditions = append(conditions, fmt.Sprintf("street = $%d", len(args)+1))
		args = append(args, filter.Street)
	}
	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR resident_id LIKE $%d)", idx, idx, idx))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT resident_id, first_name, middle_name, last_name, suffix, sex, civil_status, birthdate, contact_number, street, barangay, created_at, updated_at
        %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var residents []models.Resident
	if err := r.db.SelectContext(ctx, &residents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list residents: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count residents: %w", err)
	}
	return residents, total, nil
}

// Delete removes a resident row. Callers are responsible for removing
// dependent pending and health record rows first.
func (r *ResidentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM residents WHERE resident_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	return nil
}
