package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/you/visitorsvc/domain"
)

// CredentialStoreImpl implements domain.CredentialStore using Redis. Only
// the plain login name is remembered, keyed per device, mirroring the app's
// "remember me" checkbox. No password or token is ever stored here.
type CredentialStoreImpl struct {
	client *redis.Client
	prefix string
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(client *redis.Client) domain.CredentialStore {
	return &CredentialStoreImpl{client: client, prefix: "remembered:"}
}

// Remember implements domain.CredentialStore
func (s *CredentialStoreImpl) Remember(ctx context.Context, deviceID, username string) error {
	return s.client.Set(ctx, s.prefix+deviceID, username, 0).Err()
}

// Remembered implements domain.CredentialStore
func (s *CredentialStoreImpl) Remembered(ctx context.Context, deviceID string) (string, error) {
	name, err := s.client.Get(ctx, s.prefix+deviceID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return name, err
}

// Forget implements domain.CredentialStore
func (s *CredentialStoreImpl) Forget(ctx context.Context, deviceID string) error {
	return s.client.Del(ctx, s.prefix+deviceID).Err()
}
