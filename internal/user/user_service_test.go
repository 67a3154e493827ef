package user

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (UserService, UserRepository) {
	t.Helper()
	repo := NewUserRepository()
	emitter := events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil)
	return NewUserService(repo, emitter, "test-secret", time.Hour), repo
}

func registerTestUser(t *testing.T, svc UserService) *UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterDefaults(t *testing.T) {
	svc, repo := newTestService(t)

	resp := registerTestUser(t, svc)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, RoleBasic, resp.Role)
	assert.Equal(t, "0", resp.BdagBalance)
	assert.Equal(t, 1, resp.Level)
	assert.Zero(t, resp.XP)

	// The stored password is hashed, never the plaintext.
	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "hunter23",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginAndVerifyToken(t *testing.T) {
	svc, _ := newTestService(t)
	resp := registerTestUser(t, svc)

	token, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newTestService(t)
	registerTestUser(t, svc)

	other := NewUserService(NewUserRepository(), events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil), "other-secret", time.Hour)

	token, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateWalletMergesFields(t *testing.T) {
	svc, _ := newTestService(t)
	resp := registerTestUser(t, svc)

	addr := "0xabc123"
	updated, err := svc.UpdateWallet(context.Background(), resp.ID, &UpdateWalletRequest{WalletAddress: &addr})
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", updated.WalletAddress)
	assert.Equal(t, "0", updated.BdagBalance, "untouched field keeps its value")

	balance := "150.5"
	updated, err = svc.UpdateWallet(context.Background(), resp.ID, &UpdateWalletRequest{BdagBalance: &balance})
	require.NoError(t, err)
	assert.Equal(t, "150.5", updated.BdagBalance)
	assert.Equal(t, "0xabc123", updated.WalletAddress)
}

func TestUpdateWalletRejectsNegativeBalance(t *testing.T) {
	svc, _ := newTestService(t)
	resp := registerTestUser(t, svc)

	balance := "-5"
	_, err := svc.UpdateWallet(context.Background(), resp.ID, &UpdateWalletRequest{BdagBalance: &balance})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	resp := registerTestUser(t, svc)

	updated, err := svc.UpdateProfile(context.Background(), resp.ID, &UpdateProfileRequest{Username: "alice-renamed"})
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Username)
	assert.Equal(t, resp.Email, updated.Email)
}
