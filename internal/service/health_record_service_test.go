package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

type mockHealthRecordRepo struct {
	details          map[int64]models.HealthRecordDetail
	updated          []models.HealthRecord
	deletedIDs       []int64
	deletedResidents []string
	nextID           int64
	ops              *[]string
}

func (m *mockHealthRecordRepo) note(op string) {
	if m.ops != nil {
		*m.ops = append(*m.ops, op)
	}
}

func (m *mockHealthRecordRepo) Create(ctx context.Context, record *models.HealthRecord) error {
	m.nextID++
	record.ID = m.nextID
	if m.details == nil {
		m.details = make(map[int64]models.HealthRecordDetail)
	}
	m.details[record.ID] = models.HealthRecordDetail{HealthRecord: *record}
	m.note("record-create")
	return nil
}

func (m *mockHealthRecordRepo) Update(ctx context.Context, record *models.HealthRecord) error {
	m.updated = append(m.updated, *record)
	return nil
}

func (m *mockHealthRecordRepo) List(ctx context.Context) ([]models.HealthRecordDetail, error) {
	out := make([]models.HealthRecordDetail, 0, len(m.details))
	for _, detail := range m.details {
		out = append(out, detail)
	}
	return out, nil
}

func (m *mockHealthRecordRepo) FindDetail(ctx context.Context, id int64) (*models.HealthRecordDetail, error) {
	if detail, ok := m.details[id]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockHealthRecordRepo) Delete(ctx context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.details, id)
	m.note("record-delete")
	return nil
}

func (m *mockHealthRecordRepo) DeleteByResident(ctx context.Context, residentID string) error {
	m.deletedResidents = append(m.deletedResidents, residentID)
	m.note("records-by-resident-delete")
	return nil
}

type mockResidentDeleter struct {
	byID    map[string]*models.Resident
	deleted []string
	ops     *[]string
}

func (m *mockResidentDeleter) FindByID(ctx context.Context, id string) (*models.Resident, error) {
	if res, ok := m.byID[id]; ok {
		return res, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockResidentDeleter) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	if m.ops != nil {
		*m.ops = append(*m.ops, "resident-delete")
	}
	return nil
}

type mockPendingCleaner struct {
	deletedResidents []string
	ops              *[]string
}

func (m *mockPendingCleaner) DeleteByResident(ctx context.Context, residentID string) error {
	m.deletedResidents = append(m.deletedResidents, residentID)
	if m.ops != nil {
		*m.ops = append(*m.ops, "pending-by-resident-delete")
	}
	return nil
}

func newRecordFixture() (*HealthRecordService, *mockHealthRecordRepo, *mockPendingCleaner, *mockResidentDeleter, *mockActivityRepo, *[]string) {
	ops := &[]string{}
	records := &mockHealthRecordRepo{ops: ops}
	pendings := &mockPendingCleaner{ops: ops}
	residents := &mockResidentDeleter{ops: ops}
	activityRepo := &mockActivityRepo{}
	activity := NewActivityService(activityRepo, zap.NewNop(), 50)
	svc := NewHealthRecordService(records, pendings, residents, activity, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, records, pendings, residents, activityRepo, ops
}

func seedRecordDetail(records *mockHealthRecordRepo) {
	recordedBy := "clerk1"
	records.details = map[int64]models.HealthRecordDetail{
		7: {
			HealthRecord: models.HealthRecord{
				ID:              7,
				ResidentID:      "RES-1234567-8901",
				WeightKg:        70,
				HeightCm:        170,
				BMI:             24.22,
				NutritionStatus: models.NutritionNormal,
				HealthCondition: models.ConditionGood,
				Diagnosis:       "Asthma",
				VisitDate:       time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
				RecordedBy:      &recordedBy,
				RegisteredAt:    time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC),
			},
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			Sex:       "Male",
			Street:    "Rizal St",
		},
	}
}

func TestHealthRecordServiceCreateFollowUpVisit(t *testing.T) {
	svc, records, _, residents, activityRepo, _ := newRecordFixture()
	residents.byID = map[string]*models.Resident{
		"RES-1234567-8901": {
			ResidentID: "RES-1234567-8901",
			FirstName:  "Juan",
			LastName:   "Dela Cruz",
		},
	}

	record, err := svc.Create(context.Background(), CreateHealthRecordRequest{
		ResidentID:      "RES-1234567-8901",
		WeightKg:        72,
		HeightCm:        170,
		HealthCondition: models.ConditionGood,
		Diagnosis:       "Follow-up",
	}, "clerk1")
	require.NoError(t, err)
	require.Len(t, records.details, 1)

	assert.Equal(t, 24.91, record.BMI)
	assert.Equal(t, models.NutritionNormal, record.NutritionStatus)
	require.NotNil(t, record.RecordedBy)
	assert.Equal(t, "clerk1", *record.RecordedBy)
	// No visit date supplied, so the clock fills it in.
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), record.VisitDate)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Juan Dela Cruz", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityAdded, activityRepo.entries[0].Action)
}

func TestHealthRecordServiceCreateUnknownResident(t *testing.T) {
	svc, records, _, _, activityRepo, _ := newRecordFixture()

	_, err := svc.Create(context.Background(), CreateHealthRecordRequest{
		ResidentID: "RES-0000000-0000",
		WeightKg:   60,
		HeightCm:   160,
	}, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, records.details)
	assert.Empty(t, activityRepo.entries)
}

func TestHealthRecordServiceUpdateRecomputesVitals(t *testing.T) {
	svc, records, _, _, activityRepo, _ := newRecordFixture()
	seedRecordDetail(records)

	updated, err := svc.Update(context.Background(), 7, UpdateHealthRecordRequest{
		WeightKg:        95,
		HeightCm:        170,
		HealthCondition: models.ConditionFair,
		Diagnosis:       "Hypertension",
	}, "clerk2")
	require.NoError(t, err)

	assert.InDelta(t, 32.87, updated.BMI, 0.001)
	assert.Equal(t, models.NutritionObese, updated.NutritionStatus)
	assert.Equal(t, "RES-1234567-8901", updated.ResidentID)
	// Recorder and registration stamp survive the overwrite.
	require.NotNil(t, updated.RecordedBy)
	assert.Equal(t, "clerk1", *updated.RecordedBy)
	assert.Equal(t, time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC), updated.RegisteredAt)
	// Omitted fields are cleared, not merged.
	assert.Empty(t, updated.BloodPressure)

	require.Len(t, records.updated, 1)
	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Juan Dela Cruz", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityModified, activityRepo.entries[0].Action)
}

func TestHealthRecordServiceDeleteCascades(t *testing.T) {
	svc, records, pendings, residents, activityRepo, ops := newRecordFixture()
	seedRecordDetail(records)

	err := svc.Delete(context.Background(), 7, "clerk2")
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, records.deletedIDs)
	assert.Equal(t, []string{"RES-1234567-8901"}, pendings.deletedResidents)
	assert.Equal(t, []string{"RES-1234567-8901"}, residents.deleted)
	// Record first, then queued submissions, then the resident identity.
	assert.Equal(t, []string{"record-delete", "pending-by-resident-delete", "resident-delete"}, *ops)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Juan Dela Cruz", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityRemoved, activityRepo.entries[0].Action)
	assert.Equal(t, "clerk2", activityRepo.entries[0].AdminUsername)
}

func TestHealthRecordServiceDeleteMissing(t *testing.T) {
	svc, _, _, _, activityRepo, _ := newRecordFixture()

	err := svc.Delete(context.Background(), 99, "clerk2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, activityRepo.entries)
}
