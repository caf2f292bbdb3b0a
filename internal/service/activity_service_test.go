package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

type mockActivityRepo struct {
	entries   []models.ActivityLogEntry
	insertErr error
	lastLimit int
}

func (m *mockActivityRepo) Insert(ctx context.Context, entry *models.ActivityLogEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityRepo) ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	m.lastLimit = limit
	out := make([]models.ActivityLogEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func TestActivityServiceRecord(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewActivityService(repo, zap.NewNop(), 50)

	svc.Record(context.Background(), "Juan Dela Cruz", models.ActivityAdded, "clerk1")

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Juan Dela Cruz", repo.entries[0].ResidentName)
	assert.Equal(t, models.ActivityAdded, repo.entries[0].Action)
	assert.Equal(t, "clerk1", repo.entries[0].AdminUsername)
}

func TestActivityServiceRecordSwallowsErrors(t *testing.T) {
	repo := &mockActivityRepo{insertErr: errors.New("db down")}
	svc := NewActivityService(repo, zap.NewNop(), 50)

	// Must not panic or propagate anything.
	svc.Record(context.Background(), "Juan Dela Cruz", models.ActivityRemoved, "clerk1")
	assert.Empty(t, repo.entries)
}

func TestActivityServiceRecentUsesConfiguredLimit(t *testing.T) {
	repo := &mockActivityRepo{}
	svc := NewActivityService(repo, zap.NewNop(), 50)

	_, err := svc.Recent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit)
}
