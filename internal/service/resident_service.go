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

type residentRepository interface {
	Create(ctx context.Context, resident *models.Resident) error
	Update(ctx context.Context, resident *models.Resident) error
	FindByID(ctx context.Context, id string) (*models.Resident, error)
	List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error)
}

type residentRecordWriter interface {
	Create(ctx context.Context, record *models.HealthRecord) error
}

// RegisterResidentRequest is the staff registration form. A valid
// registration always yields the resident identity plus the first
// health record in one request.
type RegisterResidentRequest struct {
	ResidentID      string    `json:"resident_id"`
	FirstName       string    `json:"first_name" validate:"required"`
	MiddleName      string    `json:"middle_name"`
	LastName        string    `json:"last_name" validate:"required"`
	Suffix          string    `json:"suffix"`
	Sex             string    `json:"sex"`
	CivilStatus     string    `json:"civil_status"`
	Birthdate       time.Time `json:"birthdate"`
	ContactNumber   string    `json:"contact_number"`
	Street          string    `json:"street"`
	Barangay        string    `json:"barangay"`
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

// UpdateResidentRequest carries the full replacement identity for a resident.
type UpdateResidentRequest struct {
	FirstName     string    `json:"first_name" validate:"required"`
	MiddleName    string    `json:"middle_name"`
	LastName      string    `json:"last_name" validate:"required"`
	Suffix        string    `json:"suffix"`
	Sex           string    `json:"sex"`
	CivilStatus   string    `json:"civil_status"`
	Birthdate     time.Time `json:"birthdate"`
	ContactNumber string    `json:"contact_number"`
	Street        string    `json:"street"`
	Barangay      string    `json:"barangay"`
}

// ResidentService handles resident identity use-cases.
type ResidentService struct {
	repo      residentRepository
	records   residentRecordWriter
	activity  *ActivityService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewResidentService constructs the resident service.
func NewResidentService(repo residentRepository, records residentRecordWriter, activity *ActivityService, validate *validator.Validate, logger *zap.Logger) *ResidentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResidentService{
		repo:      repo,
		records:   records,
		activity:  activity,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns residents and pagination metadata.
func (s *ResidentService) List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, *models.Pagination, error) {
	residents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list residents")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return residents, pagination, nil
}

// Get returns one resident by identifier.
func (s *ResidentService) Get(ctx context.Context, id string) (*models.Resident, error) {
	resident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resident not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resident")
	}
	return resident, nil
}

// Register creates a resident together with their first health record and
// appends an "added" audit entry attributed to the acting admin.
func (s *ResidentService) Register(ctx context.Context, req RegisterResidentRequest, adminUsername string) (*models.Resident, *models.HealthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resident payload")
	}

	residentID := req.ResidentID
	if residentID == "" {
		residentID = models.NewResidentID()
	} else if !models.ResidentIDPattern.MatchString(residentID) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "resident_id does not match the RES-0000000-0000 format")
	}

	resident := &models.Resident{
		ResidentID:    residentID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Suffix:        req.Suffix,
		Sex:           req.Sex,
		CivilStatus:   req.CivilStatus,
		Birthdate:     req.Birthdate,
		ContactNumber: req.ContactNumber,
		Street:        req.Street,
		Barangay:      req.Barangay,
	}
	if err := s.repo.Create(ctx, resident); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resident")
	}

	bmi := models.ComputeBMI(req.WeightKg, req.HeightCm)
	visitDate := req.VisitDate
	if visitDate.IsZero() {
		visitDate = s.now()
	}
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
		VisitDate:       visitDate,
		Remarks:         req.Remarks,
		RegisteredAt:    s.now(),
	}
	if adminUsername != "" {
		record.RecordedBy = &adminUsername
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create initial health record")
	}

	s.activity.Record(ctx, resident.FullName(), models.ActivityAdded, adminUsername)
	return resident, record, nil
}

// Update replaces a resident's identity fields wholesale. The resident
// identifier itself is immutable.
func (s *ResidentService) Update(ctx context.Context, id string, req UpdateResidentRequest, adminUsername string) (*models.Resident, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resident payload")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resident not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resident")
	}

	resident := &models.Resident{
		ResidentID:    existing.ResidentID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Suffix:        req.Suffix,
		Sex:           req.Sex,
		CivilStatus:   req.CivilStatus,
		Birthdate:     req.Birthdate,
		ContactNumber: req.ContactNumber,
		Street:        req.Street,
		Barangay:      req.Barangay,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     s.now(),
	}
	if resident.Barangay == "" {
		resident.Barangay = models.DefaultBarangay
	}
	if err := s.repo.Update(ctx, resident); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update resident")
	}

	s.activity.Record(ctx, resident.FullName(), models.ActivityModified, adminUsername)
	return resident, nil
}
