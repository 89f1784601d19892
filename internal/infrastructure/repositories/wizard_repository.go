package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/visitorsvc/domain"
)

// WizardRepositoryImpl implements domain.WizardRepository using Redis. Form
// state lives only for the duration of a wizard session: the TTL bounds
// abandoned sessions and Delete removes cancelled or completed ones, so no
// registration data outlives its session.
type WizardRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewWizardRepository creates a new wizard repository
func NewWizardRepository(client *redis.Client, ttl time.Duration) domain.WizardRepository {
	return &WizardRepositoryImpl{
		client: client,
		prefix: "wizard:",
		ttl:    ttl,
	}
}

// Create implements domain.WizardRepository
func (r *WizardRepositoryImpl) Create(ctx context.Context, form *domain.FormState) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal form state: %w", err)
	}
	return r.client.Set(ctx, r.prefix+form.ID, data, r.ttl).Err()
}

// FindByID implements domain.WizardRepository
func (r *WizardRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.FormState, error) {
	data, err := r.client.Get(ctx, r.prefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrWizardNotFound
		}
		return nil, err
	}

	var form domain.FormState
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form state: %w", err)
	}
	return &form, nil
}

// Save implements domain.WizardRepository. The XX flag makes this an
// update-only write: a session cancelled while a lookup was in flight stays
// gone instead of being resurrected by the late result.
func (r *WizardRepositoryImpl) Save(ctx context.Context, form *domain.FormState) error {
	form.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal form state: %w", err)
	}

	ok, err := r.client.SetXX(ctx, r.prefix+form.ID, data, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWizardNotFound
	}
	return nil
}

// Delete implements domain.WizardRepository
func (r *WizardRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
