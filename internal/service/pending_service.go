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

type pendingResidentRepository interface {
	Create(ctx context.Context, pending *models.PendingResident) error
	List(ctx context.Context) ([]models.PendingResidentDetail, error)
	FindDetail(ctx context.Context, id int64) (*models.PendingResidentDetail, error)
	Delete(ctx context.Context, id int64) error
	DeleteByResident(ctx context.Context, residentID string) error
}

type pendingResidentWriter interface {
	Create(ctx context.Context, resident *models.Resident) error
	Delete(ctx context.Context, id string) error
}

type pendingRecordRepository interface {
	Create(ctx context.Context, record *models.HealthRecord) error
	DeleteByResident(ctx context.Context, residentID string) error
}

// SubmitPendingRequest is the public self-service intake form. The resident
// identity is created immediately; the health snapshot waits for review.
type SubmitPendingRequest struct {
	FirstName       string    `json:"first_name" validate:"required"`
	MiddleName      string    `json:"middle_name"`
	LastName        string    `json:"last_name" validate:"required"`
	Suffix          string    `json:"suffix"`
	Sex             string    `json:"sex"`
	CivilStatus     string    `json:"civil_status"`
	Birthdate       time.Time `json:"birthdate"`
	ContactNumber   string    `json:"contact_number"`
	Street          string    `json:"street"`
	IsPWD           bool      `json:"is_pwd"`
	HeightCm        float64   `json:"height_cm"`
	WeightKg        float64   `json:"weight_kg"`
	HealthCondition string    `json:"health_condition"`
	Allergies       string    `json:"allergies"`
	VerifiedBy      string    `json:"verified_by"`
}

// PendingService handles the self-registration review queue.
type PendingService struct {
	pendings  pendingResidentRepository
	residents pendingResidentWriter
	records   pendingRecordRepository
	activity  *ActivityService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPendingService constructs the pending resident service.
func NewPendingService(pendings pendingResidentRepository, residents pendingResidentWriter, records pendingRecordRepository, activity *ActivityService, validate *validator.Validate, logger *zap.Logger) *PendingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PendingService{
		pendings:  pendings,
		residents: residents,
		records:   records,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the review queue, newest submissions first.
func (s *PendingService) List(ctx context.Context) ([]models.PendingResidentDetail, error) {
	pendings, err := s.pendings.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending residents")
	}
	return pendings, nil
}

// Submit files a self-registration: the resident identity is created right
// away and the vitals snapshot goes onto the review queue. No audit entry
// is written until staff act on the submission.
func (s *PendingService) Submit(ctx context.Context, req SubmitPendingRequest) (*models.PendingResident, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	resident := &models.Resident{
		ResidentID:    models.NewResidentID(),
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Suffix:        req.Suffix,
		Sex:           req.Sex,
		CivilStatus:   req.CivilStatus,
		Birthdate:     req.Birthdate,
		ContactNumber: req.ContactNumber,
		Street:        req.Street,
	}
	if err := s.residents.Create(ctx, resident); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resident")
	}

	bmi := models.ComputeBMI(req.WeightKg, req.HeightCm)
	pending := &models.PendingResident{
		ResidentID:      resident.ResidentID,
		IsPWD:           req.IsPWD,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		BMI:             bmi,
		HealthCondition: req.HealthCondition,
		Allergies:       req.Allergies,
		VerifiedBy:      req.VerifiedBy,
		SubmittedAt:     s.now(),
	}
	if err := s.pendings.Create(ctx, pending); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue pending resident")
	}
	return pending, nil
}

// Accept promotes a pending submission into a permanent health record and
// removes it from the queue. The record's recorder is the name captured on
// the submission form, while the audit entry names the approving admin.
// The promotion is insert-then-delete without a transaction; a delete
// failure after a successful insert surfaces as an error, leaving the
// inserted record in place alongside the stale queue entry.
func (s *PendingService) Accept(ctx context.Context, id int64, adminUsername string) (*models.HealthRecord, error) {
	detail, err := s.pendings.FindDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pending resident not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending resident")
	}

	record := &models.HealthRecord{
		ResidentID:      detail.PendingResident.ResidentID,
		IsPWD:           detail.IsPWD,
		WeightKg:        detail.WeightKg,
		HeightCm:        detail.HeightCm,
		BMI:             detail.BMI,
		NutritionStatus: models.NutritionStatusFor(detail.BMI),
		HealthCondition: detail.HealthCondition,
		Allergies:       detail.Allergies,
		VisitDate:       detail.SubmittedAt,
		RegisteredAt:    s.now(),
	}
	if detail.VerifiedBy != "" {
		verifiedBy := detail.VerifiedBy
		record.RecordedBy = &verifiedBy
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to promote pending resident")
	}
	if err := s.pendings.Delete(ctx, id); err != nil {
		s.logger.Warn("pending entry not removed after approval",
			zap.Int64("pending_id", id),
			zap.String("resident_id", detail.PendingResident.ResidentID),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove pending resident after approval")
	}

	s.activity.Record(ctx, detail.ResidentName(), models.ActivityAdded, adminUsername)
	return record, nil
}

// Reject removes a submission along with the resident identity it created.
// Any health records that accumulated under that identity go with it. The
// display name is captured before the deletes so the audit entry survives.
func (s *PendingService) Reject(ctx context.Context, id int64, adminUsername string) error {
	detail, err := s.pendings.FindDetail(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "pending resident not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending resident")
	}
	residentName := detail.ResidentName()
	residentID := detail.PendingResident.ResidentID

	if err := s.pendings.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pending resident")
	}
	if err := s.records.DeleteByResident(ctx, residentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resident records")
	}
	if err := s.residents.Delete(ctx, residentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resident")
	}

	s.activity.Record(ctx, residentName, models.ActivityRemoved, adminUsername)
	return nil
}
