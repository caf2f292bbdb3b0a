package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

func TestPendingResidentRepositoryCreateCoercesPWD(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingResidentRepository(db)

	mock.ExpectQuery("INSERT INTO pending_residents").
		WithArgs("RES-1234567-1234", 1, 160.0, 55.0, 21.48, "Good", "none", "Maria Reyes", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	pending := &models.PendingResident{
		ResidentID:      "RES-1234567-1234",
		IsPWD:           true,
		HeightCm:        160,
		WeightKg:        55,
		BMI:             21.48,
		HealthCondition: "Good",
		Allergies:       "none",
		VerifiedBy:      "Maria Reyes",
	}
	require.NoError(t, repo.Create(context.Background(), pending))
	assert.Equal(t, int64(7), pending.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingResidentRepositoryFindDetailNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingResidentRepository(db)

	mock.ExpectQuery("SELECT p.id, .+ FROM pending_residents p").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindDetail(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingResidentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingResidentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "resident_id", "is_pwd", "height_cm", "weight_kg", "bmi", "health_condition", "allergies", "verified_by", "submitted_at", "first_name", "middle_name", "last_name", "suffix", "sex", "birthdate", "street"}).
		AddRow(int64(1), "RES-1234567-1234", false, 160.0, 55.0, 21.48, "Good", "", "Maria Reyes", time.Now(), "Jose", "", "Santos", "", "Male", time.Now(), "Rizal St")
	mock.ExpectQuery("SELECT p.id, .+ ORDER BY p.submitted_at DESC").
		WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jose Santos", entries[0].ResidentName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingResidentRepositoryDeleteByResident(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPendingResidentRepository(db)

	mock.ExpectExec("DELETE FROM pending_residents WHERE resident_id").
		WithArgs("RES-1234567-1234").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByResident(context.Background(), "RES-1234567-1234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
