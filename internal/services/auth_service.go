package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/visitorsvc/domain"
)

// AuthServiceImpl implements domain.AuthService. Credentials are verified by
// the upstream backend; this side only keeps the session and, when asked,
// the remembered login name.
type AuthServiceImpl struct {
	gateway     domain.UpstreamGateway
	sessionRepo domain.SessionRepository
	tokenSvc    domain.TokenService
	credStore   domain.CredentialStore
	sessionTTL  time.Duration
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	gateway domain.UpstreamGateway,
	sessionRepo domain.SessionRepository,
	tokenSvc domain.TokenService,
	credStore domain.CredentialStore,
	sessionTTL time.Duration,
	accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		gateway:     gateway,
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
		credStore:   credStore,
		sessionTTL:  sessionTTL,
		accessTTL:   accessTTL,
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string, remember bool, deviceID string) (*domain.AuthResult, error) {
	user, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		emit(domain.NewFlowEvent(domain.OperatorLoginFailureEvent).WithError(err).
			WithMetadata("username", username))
		return nil, err
	}

	session := &domain.Session{
		ID:        "sess_" + uuid.NewString(),
		UserID:    user.UserID,
		UserRole:  user.UserRole,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.UserID, user.UserRole, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if deviceID != "" {
		if remember {
			if err := s.credStore.Remember(ctx, deviceID, username); err != nil {
				return nil, fmt.Errorf("failed to remember username: %w", err)
			}
		} else if err := s.credStore.Forget(ctx, deviceID); err != nil {
			return nil, fmt.Errorf("failed to forget username: %w", err)
		}
	}

	emit(domain.NewFlowEvent(domain.OperatorLoginEvent).WithUser(user.UserID))
	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
		SessionID:   session.ID,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout deletes the session. The remembered username is a convenience and
// survives logout; only an un-ticked remember box removes it.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	emit(domain.NewFlowEvent(domain.OperatorLogoutEvent).WithMetadata("session_id", sessionID))
	return nil
}

// RememberedUsername implements domain.AuthService
func (s *AuthServiceImpl) RememberedUsername(ctx context.Context, deviceID string) (string, error) {
	return s.credStore.Remembered(ctx, deviceID)
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*AuthServiceImpl)(nil)
