package service

import (
	"context"
	"testing"

	"github.com/Sriraja07/BillSys/internal/config"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUser(repo *stubUserRepo, mobile, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{MobileNumber: mobile, PasswordHash: string(hash), Role: role, Name: "Test User"}
	_ = repo.Create(context.Background(), u)
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUser(repo, "9999999999", "admin123", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "9999999999", Password: "admin123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUser(repo, "9999999999", "admin123", "admin")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "9999999999", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownMobile(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "8888888888", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUser(repo, "9999999999", "admin123", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "9999999999", Password: "admin123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc()
	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestCreateUser_DuplicateMobile(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUser(repo, "9999999999", "admin123", "admin")

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		MobileNumber: "9999999999", Name: "Dup", Role: "employee", Password: "secret1",
	})
	assert.ErrorContains(t, err, "already registered")
}

func TestListUsers_Stats(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUser(repo, "9999999990", "pw", "admin")
	seedUser(repo, "9999999991", "pw", "employee")
	seedUser(repo, "9999999992", "pw", "employee")
	seedUser(repo, "9999999993", "pw", "owner")

	resp, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Stats.TotalUsers)
	assert.Equal(t, 1, resp.Stats.TotalAdmins)
	assert.Equal(t, 2, resp.Stats.TotalEmployees)
	assert.Equal(t, 1, resp.Stats.TotalOwners)
}

func TestDeleteUser_LastAdminGuard(t *testing.T) {
	svc, repo := buildAuthSvc()
	admin := seedUser(repo, "9999999999", "admin123", "admin")

	err := svc.DeleteUser(context.Background(), admin.ID)
	assert.ErrorContains(t, err, "last admin")

	// A second admin lifts the guard.
	other := seedUser(repo, "8888888888", "admin123", "admin")
	require.NoError(t, svc.DeleteUser(context.Background(), other.ID))
}

func TestChangePassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	u := seedUser(repo, "9999999999", "oldpass", "employee")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpass", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "9999999999", Password: "newpass1",
	})
	assert.NoError(t, err)
}

func TestChangePassword_ConfirmMismatch(t *testing.T) {
	svc, repo := buildAuthSvc()
	u := seedUser(repo, "9999999999", "oldpass", "employee")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpass", NewPassword: "newpass1", ConfirmPassword: "different",
	})
	assert.ErrorContains(t, err, "confirmation does not match")
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, repo := buildAuthSvc()
	u := seedUser(repo, "9999999999", "oldpass", "employee")

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "bogus", NewPassword: "newpass1",
	})
	assert.ErrorContains(t, err, "current password is incorrect")
}

func TestResetPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	u := seedUser(repo, "9999999999", "oldpass", "employee")

	require.NoError(t, svc.ResetPassword(context.Background(), u.ID, dto.ResetPasswordRequest{
		NewPassword: "resetpw1",
	}))
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		MobileNumber: "9999999999", Password: "resetpw1",
	})
	assert.NoError(t, err)
}
