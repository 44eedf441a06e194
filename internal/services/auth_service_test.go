package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegister_ReservedUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest("me"))
	assert.ErrorIs(t, err, ErrUsernameReserved)
}

func TestRegister_Duplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Register(registerRequest("alice"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	req := registerRequest("alice")
	req.Email = "other@example.com"
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_ShortPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := registerRequest("alice")
	req.Password = "short"
	_, err := svc.Register(req)

	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	first, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The presented token was single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
