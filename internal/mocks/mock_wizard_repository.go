package mocks

import (
	"context"
	"sync"

	"github.com/you/visitorsvc/domain"
)

// MockWizardRepository implements domain.WizardRepository interface for testing.
// Without overrides it behaves as an in-memory store with the same
// update-only Save semantics as the Redis implementation.
type MockWizardRepository struct {
	CreateFunc   func(ctx context.Context, form *domain.FormState) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.FormState, error)
	SaveFunc     func(ctx context.Context, form *domain.FormState) error
	DeleteFunc   func(ctx context.Context, id string) error

	mu    sync.Mutex
	store map[string]*domain.FormState
}

// NewMockWizardRepository creates a new MockWizardRepository with default behaviors
func NewMockWizardRepository() *MockWizardRepository {
	return &MockWizardRepository{store: make(map[string]*domain.FormState)}
}

// Create stores a new wizard session
func (m *MockWizardRepository) Create(ctx context.Context, form *domain.FormState) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, form)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *form
	m.store[form.ID] = &cp
	return nil
}

// FindByID loads a wizard session
func (m *MockWizardRepository) FindByID(ctx context.Context, id string) (*domain.FormState, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	form, ok := m.store[id]
	if !ok {
		return nil, domain.ErrWizardNotFound
	}
	cp := *form
	return &cp, nil
}

// Save updates an existing wizard session, failing when it is gone
func (m *MockWizardRepository) Save(ctx context.Context, form *domain.FormState) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, form)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[form.ID]; !ok {
		return domain.ErrWizardNotFound
	}
	cp := *form
	m.store[form.ID] = &cp
	return nil
}

// Delete removes a wizard session
func (m *MockWizardRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// Compile-time interface compliance verification
var _ domain.WizardRepository = (*MockWizardRepository)(nil)
