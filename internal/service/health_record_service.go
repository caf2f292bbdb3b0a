package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

type healthRecordRepository interface {
	Create(ctx context.Context, record *models.HealthRecord) error
	Update(ctx context.Context, record *models.HealthRecord) error
	List(ctx context.Context) ([]models.HealthRecordDetail, error)
	FindDetail(ctx context.Context, id int64) (*models.HealthRecordDetail, error)
	Delete(ctx context.Context, id int64) error
}

type recordPendingCleaner interface {
	DeleteByResident(ctx context.Context, residentID string) error
}

type recordResidentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Resident, error)
	Delete(ctx context.Context, id string) error
}

// CreateHealthRecordRequest adds a follow-up visit for an existing resident.
type CreateHealthRecordRequest struct {
	ResidentID      string    `json:"resident_id" validate:"required"`
	IsPWD           bool      `json:"is_pwd"`
	BloodPressure   string    `json:"blood_pressure"`
	WeightKg        float64   `json:"weight_kg"`
	HeightCm        float64   `json:"height_cm"`
	HealthCondition string    `json:"health_condition"`
	Diagnosis       string    `json:"diagnosis"`
	Allergies       string    `json:"allergies"`
	VisitDate       time.Time `json:"visit_date"`
	Remarks         string    `json:"remarks"`
}

// UpdateHealthRecordRequest replaces every clinical field of a record.
// BMI and nutrition status are recomputed server-side from the submitted
// weight and height, never taken from the client.
type UpdateHealthRecordRequest struct {
	IsPWD           bool      `json:"is_pwd"`
	BloodPressure   string    `json:"blood_pressure"`
	WeightKg        float64   `json:"weight_kg"`
	HeightCm        float64   `json:"height_cm"`
	HealthCondition string    `json:"health_condition"`
	Diagnosis       string    `json:"diagnosis"`
	Allergies       string    `json:"allergies"`
	VisitDate       time.Time `json:"visit_date"`
	Remarks         string    `json:"remarks"`
}

// HealthRecordService handles the clinical record use-cases.
type HealthRecordService struct {
	records   healthRecordRepository
	pendings  recordPendingCleaner
	residents recordResidentRepository
	activity  *ActivityService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewHealthRecordService constructs the health record service.
func NewHealthRecordService(records healthRecordRepository, pendings recordPendingCleaner, residents recordResidentRepository, activity *ActivityService, validate *validator.Validate, logger *zap.Logger) *HealthRecordService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthRecordService{
		records:   records,
		pendings:  pendings,
		residents: residents,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all records joined with resident identity, newest first.
func (s *HealthRecordService) List(ctx context.Context) ([]models.HealthRecordDetail, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list health records")
	}
	return records, nil
}

// Get returns one record with its resident identity.
func (s *HealthRecordService) Get(ctx context.Context, id int64) (*models.HealthRecordDetail, error) {
	detail, err := s.records.FindDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load health record")
	}
	return detail, nil
}

// Create appends a new visit record for a resident who is already on file.
func (s *HealthRecordService) Create(ctx context.Context, req CreateHealthRecordRequest, adminUsername string) (*models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid health record payload")
	}
	resident, err := s.residents.FindByID(ctx, req.ResidentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resident not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resident")
	}

	bmi := models.ComputeBMI(req.WeightKg, req.HeightCm)
	record := &models.HealthRecord{
		ResidentID:      resident.ResidentID,
		IsPWD:           req.IsPWD,
		BloodPressure:   req.BloodPressure,
		WeightKg:        req.WeightKg,
		HeightCm:        req.HeightCm,
		BMI:             bmi,
		NutritionStatus: models.NutritionStatusFor(bmi),
		HealthCondition: req.HealthCondition,
		Diagnosis:       req.Diagnosis,
		Allergies:       req.Allergies,
		VisitDate:       req.VisitDate,
		Remarks:         req.Remarks,
		RegisteredAt:    s.now(),
	}
	if adminUsername != "" {
		record.RecordedBy = &adminUsername
	}
	if record.VisitDate.IsZero() {
		record.VisitDate = s.now()
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create health record")
	}

	s.activity.Record(ctx, resident.FullName(), models.ActivityAdded, adminUsername)
	return record, nil
}

// Update replaces the record's clinical fields wholesale and recomputes the
// derived vitals.
func (s *HealthRecordService) Update(ctx context.Context, id int64, req UpdateHealthRecordRequest, adminUsername string) (*models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid health record payload")
	}
	detail, err := s.records.FindDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load health record")
	}

	bmi := models.ComputeBMI(req.WeightKg, req.HeightCm)
	record := &models.HealthRecord{
		ID:              detail.ID,
		ResidentID:      detail.HealthRecord.ResidentID,
		IsPWD:           req.IsPWD,
		BloodPressure:   req.BloodPressure,
		WeightKg:        req.WeightKg,
		HeightCm:        req.HeightCm,
		BMI:             bmi,
		NutritionStatus: models.NutritionStatusFor(bmi),
		HealthCondition: req.HealthCondition,
		Diagnosis:       req.Diagnosis,
		Allergies:       req.Allergies,
		VisitDate:       req.VisitDate,
		Remarks:         req.Remarks,
		RecordedBy:      detail.RecordedBy,
		RegisteredAt:    detail.RegisteredAt,
	}
	if record.VisitDate.IsZero() {
		record.VisitDate = detail.VisitDate
	}
	if err := s.records.Update(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update health record")
	}

	s.activity.Record(ctx, detail.ResidentName(), models.ActivityModified, adminUsername)
	return record, nil
}

// Delete removes a record and cascades to the resident it belongs to:
// the record, any queued submissions for that resident, and finally the
// resident identity itself. The display name is looked up first so the
// audit entry can still name who was removed.
func (s *HealthRecordService) Delete(ctx context.Context, id int64, adminUsername string) error {
	detail, err := s.records.FindDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load health record")
	}
	residentName := detail.ResidentName()
	residentID := detail.HealthRecord.ResidentID

	if err := s.records.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete health record")
	}
	if err := s.pendings.DeleteByResident(ctx, residentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pending submissions")
	}
	if err := s.residents.Delete(ctx, residentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resident")
	}

	s.activity.Record(ctx, residentName, models.ActivityRemoved, adminUsername)
	return nil
}
