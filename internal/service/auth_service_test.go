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
	"golang.org/x/crypto/bcrypt"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
)

type mockAdminRepo struct {
	admins map[string]models.Admin
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if admin, ok := m.admins[username]; ok {
		return &admin, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	for _, admin := range m.admins {
		if admin.ID == id {
			return &admin, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newAuthFixture(t *testing.T) (*AuthService, *mockAdminRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockAdminRepo{admins: map[string]models.Admin{
		"jdelacruz": {ID: "adm-1", Username: "jdelacruz", PasswordHash: string(hash)},
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "unit-test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "brgy-health-api",
	})
	return svc, repo
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "jdelacruz", Password: "s3cret"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jdelacruz", resp.Admin.Username)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "adm-1", claims.AdminID)
}

func TestAuthServiceLoginFailuresIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, unknownErr := svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "s3cret"})
	_, wrongErr := svc.Login(context.Background(), models.LoginRequest{Username: "jdelacruz", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	unknown := appErrors.FromError(unknownErr)
	wrong := appErrors.FromError(wrongErr)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, unknown.Status, wrong.Status)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jdelacruz"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "jdelacruz", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token + "x")
	assert.Error(t, err)
}
