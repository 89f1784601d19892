package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/visitorsvc/domain"
	"github.com/you/visitorsvc/internal/mocks"
)

type authFixture struct {
	gateway     *mocks.MockUpstreamGateway
	sessionRepo *mocks.MockSessionRepository
	tokenSvc    *mocks.MockTokenService
	credStore   *mocks.MockCredentialStore
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		gateway:     mocks.NewMockUpstreamGateway(),
		sessionRepo: mocks.NewMockSessionRepository(),
		tokenSvc:    mocks.NewMockTokenService(),
		credStore:   mocks.NewMockCredentialStore(),
	}
	f.svc = NewAuthService(f.gateway, f.sessionRepo, f.tokenSvc, f.credStore, time.Hour, 15*time.Minute)
	return f
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()

	f.gateway.LoginFunc = func(ctx context.Context, username, password string) (*domain.User, error) {
		assert.Equal(t, "reception1", username)
		return &domain.User{UserID: 12, UserName: "reception1", UserRole: "Reception"}, nil
	}
	var createdSession *domain.Session
	f.sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
		createdSession = session
		return nil
	}
	f.tokenSvc.GenerateAccessTokenFunc = func(userID int, role string, sessionID string) (string, error) {
		assert.Equal(t, 12, userID)
		assert.Equal(t, "Reception", role)
		return "signed.jwt", nil
	}

	result, err := f.svc.Login(context.Background(), "reception1", "secret", false, "")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", result.AccessToken)
	assert.Equal(t, int64(900), result.ExpiresIn)
	require.NotNil(t, createdSession)
	assert.Equal(t, 12, createdSession.UserID)
	assert.Equal(t, "Reception", createdSession.UserRole)
	assert.Equal(t, createdSession.ID, result.SessionID)
}

func TestLoginRememberStoresUsername(t *testing.T) {
	f := newAuthFixture()

	f.gateway.LoginFunc = func(ctx context.Context, username, password string) (*domain.User, error) {
		return &domain.User{UserID: 12, UserName: username, UserRole: "Reception"}, nil
	}
	var rememberedDevice, rememberedUser string
	f.credStore.RememberFunc = func(ctx context.Context, deviceID, username string) error {
		rememberedDevice, rememberedUser = deviceID, username
		return nil
	}

	_, err := f.svc.Login(context.Background(), "reception1", "secret", true, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "device-a", rememberedDevice)
	assert.Equal(t, "reception1", rememberedUser)
}

func TestLoginWithoutRememberForgetsUsername(t *testing.T) {
	f := newAuthFixture()

	f.gateway.LoginFunc = func(ctx context.Context, username, password string) (*domain.User, error) {
		return &domain.User{UserID: 12, UserRole: "Reception"}, nil
	}
	forgotten := false
	f.credStore.ForgetFunc = func(ctx context.Context, deviceID string) error {
		forgotten = true
		return nil
	}

	_, err := f.svc.Login(context.Background(), "reception1", "secret", false, "device-a")
	require.NoError(t, err)
	assert.True(t, forgotten)
}

func TestLoginUpstreamRejection(t *testing.T) {
	f := newAuthFixture()

	f.gateway.LoginFunc = func(ctx context.Context, username, password string) (*domain.User, error) {
		return nil, &domain.UpstreamError{StatusCode: 401, Message: "Invalid username or password"}
	}

	_, err := f.svc.Login(context.Background(), "reception1", "wrong", false, "")
	require.Error(t, err)
	ue, ok := domain.AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid username or password", ue.Message)
}

func TestLogoutDeletesSessionOnly(t *testing.T) {
	f := newAuthFixture()

	var deleted string
	f.sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}
	forgotten := false
	f.credStore.ForgetFunc = func(ctx context.Context, deviceID string) error {
		forgotten = true
		return nil
	}

	require.NoError(t, f.svc.Logout(context.Background(), "sess_abc"))
	assert.Equal(t, "sess_abc", deleted)
	assert.False(t, forgotten)
}

func TestRememberedUsername(t *testing.T) {
	f := newAuthFixture()

	f.credStore.RememberedFunc = func(ctx context.Context, deviceID string) (string, error) {
		assert.Equal(t, "device-a", deviceID)
		return "reception1", nil
	}

	username, err := f.svc.RememberedUsername(context.Background(), "device-a")
	require.NoError(t, err)
	assert.Equal(t, "reception1", username)
}
