package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

type mockPendingRepo struct {
	details          map[int64]models.PendingResidentDetail
	created          []models.PendingResident
	deletedIDs       []int64
	deletedResidents []string
	nextID           int64
	deleteErr        error
}

func (m *mockPendingRepo) Create(ctx context.Context, pending *models.PendingResident) error {
	m.nextID++
	pending.ID = m.nextID
	m.created = append(m.created, *pending)
	return nil
}

func (m *mockPendingRepo) List(ctx context.Context) ([]models.PendingResidentDetail, error) {
	out := make([]models.PendingResidentDetail, 0, len(m.details))
	for _, detail := range m.details {
		out = append(out, detail)
	}
	return out, nil
}

func (m *mockPendingRepo) FindDetail(ctx context.Context, id int64) (*models.PendingResidentDetail, error) {
	if detail, ok := m.details[id]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPendingRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	delete(m.details, id)
	return nil
}

func (m *mockPendingRepo) DeleteByResident(ctx context.Context, residentID string) error {
	m.deletedResidents = append(m.deletedResidents, residentID)
	return nil
}

func newPendingFixture() (*PendingService, *mockPendingRepo, *mockResidentRepo, *mockHealthRecordRepo, *mockActivityRepo) {
	pendings := &mockPendingRepo{}
	residents := &mockResidentRepo{}
	records := &mockHealthRecordRepo{}
	activityRepo := &mockActivityRepo{}
	activity := NewActivityService(activityRepo, zap.NewNop(), 50)
	svc := NewPendingService(pendings, residents, records, activity, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, pendings, residents, records, activityRepo
}

func seedPendingDetail(pendings *mockPendingRepo) {
	pendings.details = map[int64]models.PendingResidentDetail{
		3: {
			PendingResident: models.PendingResident{
				ID:              3,
				ResidentID:      "RES-7654321-4321",
				IsPWD:           true,
				HeightCm:        158,
				WeightKg:        47,
				BMI:             18.83,
				HealthCondition: models.ConditionFair,
				Allergies:       "Penicillin",
				VerifiedBy:      "Nurse Reyes",
				SubmittedAt:     time.Date(2025, 5, 28, 14, 0, 0, 0, time.UTC),
			},
			FirstName: "Ana",
			LastName:  "Lim",
			Sex:       "Female",
			Street:    "Camia St",
		},
	}
}

func TestPendingServiceSubmit(t *testing.T) {
	svc, pendings, residents, _, activityRepo := newPendingFixture()

	pending, err := svc.Submit(context.Background(), SubmitPendingRequest{
		FirstName:  "Ana",
		LastName:   "Lim",
		Sex:        "Female",
		Street:     "Camia St",
		HeightCm:   158,
		WeightKg:   47,
		VerifiedBy: "Nurse Reyes",
	})
	require.NoError(t, err)

	// The resident identity exists immediately, before any review.
	require.Len(t, residents.residents, 1)
	assert.Contains(t, residents.residents, pending.ResidentID)
	assert.Regexp(t, models.ResidentIDPattern, pending.ResidentID)

	require.Len(t, pendings.created, 1)
	assert.InDelta(t, 18.83, pending.BMI, 0.001)
	assert.Equal(t, "Nurse Reyes", pending.VerifiedBy)

	// Submission alone leaves no audit trail.
	assert.Empty(t, activityRepo.entries)
}

func TestPendingServiceSubmitValidation(t *testing.T) {
	svc, pendings, residents, _, _ := newPendingFixture()

	_, err := svc.Submit(context.Background(), SubmitPendingRequest{FirstName: "Ana"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, residents.residents)
	assert.Empty(t, pendings.created)
}

func TestPendingServiceAccept(t *testing.T) {
	svc, pendings, _, records, activityRepo := newPendingFixture()
	seedPendingDetail(pendings)

	record, err := svc.Accept(context.Background(), 3, "clerk1")
	require.NoError(t, err)

	assert.Equal(t, "RES-7654321-4321", record.ResidentID)
	assert.True(t, record.IsPWD)
	assert.InDelta(t, 18.83, record.BMI, 0.001)
	assert.Equal(t, models.NutritionNormal, record.NutritionStatus)
	// The record credits the name captured at submission, not the approver.
	require.NotNil(t, record.RecordedBy)
	assert.Equal(t, "Nurse Reyes", *record.RecordedBy)
	assert.Equal(t, time.Date(2025, 5, 28, 14, 0, 0, 0, time.UTC), record.VisitDate)

	require.Len(t, records.details, 1)
	assert.Equal(t, []int64{3}, pendings.deletedIDs)

	// The audit entry names the approving admin.
	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Ana Lim", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityAdded, activityRepo.entries[0].Action)
	assert.Equal(t, "clerk1", activityRepo.entries[0].AdminUsername)
}

func TestPendingServiceAcceptSurfacesDeleteFailure(t *testing.T) {
	svc, pendings, _, records, activityRepo := newPendingFixture()
	seedPendingDetail(pendings)
	pendings.deleteErr = errors.New("db down")

	_, err := svc.Accept(context.Background(), 3, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)

	// The inserted record stays; only the queue cleanup failed, and no
	// audit entry is written for the half-finished approval.
	require.Len(t, records.details, 1)
	assert.Empty(t, activityRepo.entries)
}

func TestPendingServiceAcceptMissing(t *testing.T) {
	svc, _, _, _, _ := newPendingFixture()

	_, err := svc.Accept(context.Background(), 404, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPendingServiceReject(t *testing.T) {
	svc, pendings, residents, records, activityRepo := newPendingFixture()
	seedPendingDetail(pendings)
	residents.residents = map[string]models.Resident{
		"RES-7654321-4321": {ResidentID: "RES-7654321-4321", FirstName: "Ana", LastName: "Lim"},
	}

	err := svc.Reject(context.Background(), 3, "clerk1")
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, pendings.deletedIDs)
	assert.Equal(t, []string{"RES-7654321-4321"}, records.deletedResidents)
	assert.Equal(t, []string{"RES-7654321-4321"}, residents.deleted)
	assert.Empty(t, residents.residents)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Ana Lim", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityRemoved, activityRepo.entries[0].Action)
}
