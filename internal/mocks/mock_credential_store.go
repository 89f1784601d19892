package mocks

import (
	"context"

	"github.com/you/visitorsvc/domain"
)

// MockCredentialStore implements domain.CredentialStore interface for testing
type MockCredentialStore struct {
	RememberFunc   func(ctx context.Context, deviceID, username string) error
	RememberedFunc func(ctx context.Context, deviceID string) (string, error)
	ForgetFunc     func(ctx context.Context, deviceID string) error
}

// NewMockCredentialStore creates a new MockCredentialStore with default behaviors
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// Remember stores the username for a device
func (m *MockCredentialStore) Remember(ctx context.Context, deviceID, username string) error {
	if m.RememberFunc != nil {
		return m.RememberFunc(ctx, deviceID, username)
	}
	// Default behavior: success
	return nil
}

// Remembered returns the stored username for a device
func (m *MockCredentialStore) Remembered(ctx context.Context, deviceID string) (string, error) {
	if m.RememberedFunc != nil {
		return m.RememberedFunc(ctx, deviceID)
	}
	// Default behavior: nothing remembered
	return "", nil
}

// Forget removes the stored username for a device
func (m *MockCredentialStore) Forget(ctx context.Context, deviceID string) error {
	if m.ForgetFunc != nil {
		return m.ForgetFunc(ctx, deviceID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialStore = (*MockCredentialStore)(nil)
