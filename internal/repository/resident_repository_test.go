package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestResidentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResidentRepository(db)

	mock.ExpectExec("INSERT INTO residents").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resident := &models.Resident{
		ResidentID: "RES-1234567-1234",
		FirstName:  "Maria",
		LastName:   "Reyes",
		Sex:        "Female",
		Birthdate:  time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Street:     "Rizal St",
	}
	err := repo.Create(context.Background(), resident)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBarangay, resident.Barangay)
	assert.False(t, resident.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepositoryCreateSurfacesPKViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResidentRepository(db)

	mock.ExpectExec("INSERT INTO residents").
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &models.Resident{ResidentID: "RES-1234567-1234"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResidentRepository(db)

	rows := sqlmock.NewRows([]string{"resident_id", "first_name", "middle_name", "last_name", "suffix", "sex", "civil_status", "birthdate", "contact_number", "street", "barangay", "created_at", "updated_at"}).
		AddRow("RES-1234567-1234", "Maria", "", "Reyes", "", "Female", "Single", time.Now(), "0917", "Rizal St", models.DefaultBarangay, time.Now(), time.Now())
	mock.ExpectQuery("SELECT resident_id, .+ FROM residents WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM residents WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	residents, total, err := repo.List(context.Background(), models.ResidentFilter{})
	require.NoError(t, err)
	assert.Len(t, residents, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResidentRepository(db)

	mock.ExpectExec("DELETE FROM residents WHERE resident_id").
		WithArgs("RES-1234567-1234").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "RES-1234567-1234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
