package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

// HealthRecordRepository manages persistence for clinical visit entries.
type HealthRecordRepository struct {
	db *sqlx.DB
}

// NewHealthRecordRepository constructs a HealthRecordRepository.
func NewHealthRecordRepository(db *sqlx.DB) *HealthRecordRepository {
	return &HealthRecordRepository{db: db}
}

// Create inserts a new visit record and fills in its generated id.
func (r *HealthRecordRepository) Create(ctx context.Context, record *models.HealthRecord) error {
	if record.RegisteredAt.IsZero() {
		record.RegisteredAt = time.Now().UTC()
	}
	const query = `INSERT INTO health_records (resident_id, is_pwd, blood_pressure, weight_kg, height_cm, bmi, nutrition_status, health_condition, diagnosis, allergies, visit_date, remarks, recorded_by, registered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		record.ResidentID,
		record.IsPWD,
		record.BloodPressure,
		record.WeightKg,
		record.HeightCm,
		record.BMI,
		record.NutritionStatus,
		record.HealthCondition,
		record.Diagnosis,
		record.Allergies,
		record.VisitDate,
		record.Remarks,
		record.RecordedBy,
		record.RegisteredAt,
	).Scan(&record.ID); err != nil {
		return fmt.Errorf("create health record: %w", err)
	}
	return nil
}

// Update applies a full-row overwrite; fields not supplied by the caller
// are written as their zero values, not left unchanged.
func (r *HealthRecordRepository) Update(ctx context.Context, record *models.HealthRecord) error {
	const query = `UPDATE health_records SET is_pwd = :is_pwd, blood_pressure = :blood_pressure, weight_kg = :weight_kg, height_cm = :height_cm, bmi = :bmi, nutrition_status = :nutrition_status, health_condition = :health_condition, diagnosis = :diagnosis, allergies = :allergies, visit_date = :visit_date, remarks = :remarks, recorded_by = :recorded_by WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update health record: %w", err)
	}
	return nil
}

// List returns all records joined with resident identity and recording
// admin name, newest registered first.
func (r *HealthRecordRepository) List(ctx context.Context) ([]models.HealthRecordDetail, error) {
	const query = `SELECT h.id, h.resident_id, h.is_pwd, h.blood_pressure, h.weight_kg, h.height_cm, h.bmi, h.nutrition_status, h.health_condition, h.diagnosis, h.allergies, h.visit_date, h.remarks, h.recorded_by, h.registered_at,
        r.first_name, r.middle_name, r.last_name, r.suffix, r.sex, r.civil_status, r.birthdate, r.street, r.barangay,
        a.username AS recorded_by_name
        FROM health_records h
        JOIN residents r ON r.resident_id = h.resident_id
        LEFT JOIN admins a ON a.id = h.recorded_by
        ORDER BY h.registered_at DESC`
	var records []models.HealthRecordDetail
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return records, nil
}

// FindDetail fetches one record joined with resident identity. The resident
// name must be captured from this row before the deletion cascade starts.
func (r *HealthRecordRepository) FindDetail(ctx context.Context, id int64) (*models.HealthRecordDetail, error) {
	const query = `SELECT h.id, h.resident_id, h.is_pwd, h.blood_pressure, h.weight_kg, h.height_cm, h.bmi, h.nutrition_status, h.health_condition, h.diagnosis, h.allergies, h.visit_date, h.remarks, h.recorded_by, h.registered_at,
        r.first_name, r.middle_name, r.last_name, r.suffix, r.sex, r.civil_status, r.birthdate, r.street, r.barangay,
        a.username AS recorded_by_name
        FROM health_records h
        JOIN residents r ON r.resident_id = h.resident_id
        LEFT JOIN admins a ON a.id = h.recorded_by
        WHERE h.id = $1`
	var detail models.HealthRecordDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Delete removes one visit record.
func (r *HealthRecordRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM health_records WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete health record: %w", err)
	}
	return nil
}

// DeleteByResident removes all visit records for the given resident.
func (r *HealthRecordRepository) DeleteByResident(ctx context.Context, residentID string) error {
	const query = `DELETE FROM health_records WHERE resident_id = $1`
	if _, err := r.db.ExecContext(ctx, query, residentID); err != nil {
		return fmt.Errorf("delete health records by resident: %w", err)
	}
	return nil
}
