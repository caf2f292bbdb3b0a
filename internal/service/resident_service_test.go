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

type mockResidentRepo struct {
	residents map[string]models.Resident
	deleted   []string
	listTotal int
}

func (m *mockResidentRepo) Create(ctx context.Context, resident *models.Resident) error {
	if m.residents == nil {
		m.residents = make(map[string]models.Resident)
	}
	if resident.Barangay == "" {
		resident.Barangay = models.DefaultBarangay
	}
	m.residents[resident.ResidentID] = *resident
	return nil
}

func (m *mockResidentRepo) Update(ctx context.Context, resident *models.Resident) error {
	m.residents[resident.ResidentID] = *resident
	return nil
}

func (m *mockResidentRepo) FindByID(ctx context.Context, id string) (*models.Resident, error) {
	if resident, ok := m.residents[id]; ok {
		return &resident, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockResidentRepo) List(ctx context.Context, filter models.ResidentFilter) ([]models.Resident, int, error) {
	out := make([]models.Resident, 0, len(m.residents))
	for _, resident := range m.residents {
		out = append(out, resident)
	}
	total := m.listTotal
	if total == 0 {
		total = len(out)
	}
	return out, total, nil
}

func (m *mockResidentRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.residents, id)
	return nil
}

type mockRecordWriter struct {
	created []models.HealthRecord
}

func (m *mockRecordWriter) Create(ctx context.Context, record *models.HealthRecord) error {
	record.ID = int64(len(m.created) + 1)
	m.created = append(m.created, *record)
	return nil
}

func newResidentFixture() (*ResidentService, *mockResidentRepo, *mockRecordWriter, *mockActivityRepo) {
	repo := &mockResidentRepo{}
	records := &mockRecordWriter{}
	activityRepo := &mockActivityRepo{}
	activity := NewActivityService(activityRepo, zap.NewNop(), 50)
	svc := NewResidentService(repo, records, activity, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, records, activityRepo
}

func TestResidentServiceRegister(t *testing.T) {
	svc, repo, records, activityRepo := newResidentFixture()

	resident, record, err := svc.Register(context.Background(), RegisterResidentRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Sex:       "Female",
		Street:    "Rizal St",
		WeightKg:  55,
		HeightCm:  160,
	}, "clerk1")
	require.NoError(t, err)

	assert.Regexp(t, models.ResidentIDPattern, resident.ResidentID)
	assert.Contains(t, repo.residents, resident.ResidentID)

	require.Len(t, records.created, 1)
	assert.Equal(t, resident.ResidentID, record.ResidentID)
	assert.InDelta(t, 21.48, record.BMI, 0.001)
	assert.Equal(t, models.NutritionNormal, record.NutritionStatus)
	require.NotNil(t, record.RecordedBy)
	assert.Equal(t, "clerk1", *record.RecordedBy)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, "Maria Santos", activityRepo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityAdded, activityRepo.entries[0].Action)
	assert.Equal(t, "clerk1", activityRepo.entries[0].AdminUsername)
}

func TestResidentServiceRegisterRequiresNames(t *testing.T) {
	svc, repo, records, _ := newResidentFixture()

	_, _, err := svc.Register(context.Background(), RegisterResidentRequest{FirstName: "Maria"}, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.residents)
	assert.Empty(t, records.created)
}

func TestResidentServiceRegisterRejectsMalformedID(t *testing.T) {
	svc, _, _, _ := newResidentFixture()

	_, _, err := svc.Register(context.Background(), RegisterResidentRequest{
		ResidentID: "RES-123-45",
		FirstName:  "Maria",
		LastName:   "Santos",
	}, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResidentServiceUpdateOverwritesIdentity(t *testing.T) {
	svc, repo, _, activityRepo := newResidentFixture()
	repo.residents = map[string]models.Resident{
		"RES-1234567-8901": {
			ResidentID:    "RES-1234567-8901",
			FirstName:     "Maria",
			LastName:      "Santos",
			ContactNumber: "09170000000",
			Street:        "Rizal St",
			Barangay:      models.DefaultBarangay,
		},
	}

	updated, err := svc.Update(context.Background(), "RES-1234567-8901", UpdateResidentRequest{
		FirstName: "Maria",
		LastName:  "Reyes",
		Street:    "Mabini St",
	}, "clerk1")
	require.NoError(t, err)

	assert.Equal(t, "RES-1234567-8901", updated.ResidentID)
	assert.Equal(t, "Reyes", updated.LastName)
	assert.Equal(t, "Mabini St", updated.Street)
	// Full overwrite: fields omitted from the payload are cleared.
	assert.Empty(t, updated.ContactNumber)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, models.ActivityModified, activityRepo.entries[0].Action)
}

func TestResidentServiceUpdateMissing(t *testing.T) {
	svc, _, _, _ := newResidentFixture()

	_, err := svc.Update(context.Background(), "RES-0000000-0000", UpdateResidentRequest{
		FirstName: "Maria",
		LastName:  "Santos",
	}, "clerk1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
