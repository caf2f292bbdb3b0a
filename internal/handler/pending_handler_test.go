package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	"github.com/jdvillanueva/brgy-health-api/internal/service"
)

type fakePendingRepo struct {
	details    map[int64]models.PendingResidentDetail
	created    []models.PendingResident
	deletedIDs []int64
}

func (f *fakePendingRepo) Create(ctx context.Context, pending *models.PendingResident) error {
	pending.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *pending)
	return nil
}

func (f *fakePendingRepo) List(ctx context.Context) ([]models.PendingResidentDetail, error) {
	out := make([]models.PendingResidentDetail, 0, len(f.details))
	for _, detail := range f.details {
		out = append(out, detail)
	}
	return out, nil
}

func (f *fakePendingRepo) FindDetail(ctx context.Context, id int64) (*models.PendingResidentDetail, error) {
	if detail, ok := f.details[id]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePendingRepo) Delete(ctx context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.details, id)
	return nil
}

func (f *fakePendingRepo) DeleteByResident(ctx context.Context, residentID string) error {
	return nil
}

type fakeResidentWriter struct {
	created []models.Resident
	deleted []string
}

func (f *fakeResidentWriter) Create(ctx context.Context, resident *models.Resident) error {
	f.created = append(f.created, *resident)
	return nil
}

func (f *fakeResidentWriter) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRecordRepo struct {
	created          []models.HealthRecord
	deletedResidents []string
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *models.HealthRecord) error {
	record.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *record)
	return nil
}

func (f *fakeRecordRepo) DeleteByResident(ctx context.Context, residentID string) error {
	f.deletedResidents = append(f.deletedResidents, residentID)
	return nil
}

type fakeActivitySink struct {
	entries []models.ActivityLogEntry
}

func (f *fakeActivitySink) Insert(ctx context.Context, entry *models.ActivityLogEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivitySink) ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	return f.entries, nil
}

func newPendingHandlerFixture() (*PendingHandler, *fakePendingRepo, *fakeResidentWriter, *fakeRecordRepo, *fakeActivitySink) {
	pendings := &fakePendingRepo{details: map[int64]models.PendingResidentDetail{}}
	residents := &fakeResidentWriter{}
	records := &fakeRecordRepo{}
	sink := &fakeActivitySink{}
	activity := service.NewActivityService(sink, zap.NewNop(), 50)
	svc := service.NewPendingService(pendings, residents, records, activity, validator.New(), zap.NewNop())
	return NewPendingHandler(svc, nil), pendings, residents, records, sink
}

func TestPendingHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, pendings, residents, _, sink := newPendingHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pending-residents",
		strings.NewReader(`{"first_name":"Ana","last_name":"Lim","height_cm":158,"weight_kg":47,"verified_by":"Nurse Reyes"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, residents.created, 1)
	require.Len(t, pendings.created, 1)
	assert.InDelta(t, 18.83, pendings.created[0].BMI, 0.001)
	assert.Empty(t, sink.entries)
}

func TestPendingHandlerSubmitRejectsMissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, pendings, residents, _, _ := newPendingHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pending-residents",
		strings.NewReader(`{"first_name":"Ana"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, residents.created)
	assert.Empty(t, pendings.created)
}

func TestPendingHandlerAccept(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, pendings, _, records, sink := newPendingHandlerFixture()
	pendings.details[3] = models.PendingResidentDetail{
		PendingResident: models.PendingResident{
			ID:          3,
			ResidentID:  "RES-7654321-4321",
			HeightCm:    158,
			WeightKg:    47,
			BMI:         18.83,
			VerifiedBy:  "Nurse Reyes",
			SubmittedAt: time.Date(2025, 5, 28, 14, 0, 0, 0, time.UTC),
		},
		FirstName: "Ana",
		LastName:  "Lim",
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pending-residents/accept/3?admin=clerk1", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Accept(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, records.created, 1)
	assert.Equal(t, []int64{3}, pendings.deletedIDs)

	var envelope struct {
		Data models.HealthRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.RecordedBy)
	assert.Equal(t, "Nurse Reyes", *envelope.Data.RecordedBy)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "clerk1", sink.entries[0].AdminUsername)
	assert.Equal(t, models.ActivityAdded, sink.entries[0].Action)
}

func TestPendingHandlerRejectCascades(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, pendings, residents, records, sink := newPendingHandlerFixture()
	pendings.details[3] = models.PendingResidentDetail{
		PendingResident: models.PendingResident{ID: 3, ResidentID: "RES-7654321-4321"},
		FirstName:       "Ana",
		LastName:        "Lim",
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/pending-residents/remove/3?admin=clerk1", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Reject(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{3}, pendings.deletedIDs)
	assert.Equal(t, []string{"RES-7654321-4321"}, records.deletedResidents)
	assert.Equal(t, []string{"RES-7654321-4321"}, residents.deleted)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, models.ActivityRemoved, sink.entries[0].Action)
	assert.Equal(t, "Ana Lim", sink.entries[0].ResidentName)
}

func TestPendingHandlerAcceptMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _, _, _, _ := newPendingHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pending-residents/accept/404", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	handler.Accept(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
