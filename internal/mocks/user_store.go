package mocks

import (
	"context"
	"time"

	"github.com/gabcerqueira/natours/internal/domain"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	MockResource[domain.User]

	// Custom behavior functions
	GetByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordFn  func(ctx context.Context, id, password, passwordConfirm string) (*domain.User, error)
	SetResetTokenFn   func(ctx context.Context, id, tokenHash string, expires time.Time) error
	ClearResetTokenFn func(ctx context.Context, id string) error
	GetByResetTokenFn func(ctx context.Context, tokenHash string) (*domain.User, error)
	DeactivateFn      func(ctx context.Context, id string) error

	// Call tracking for verification
	ResetTokenHashes  []string
	ClearedIDs        []string
	DeactivatedIDs    []string
	PasswordUpdateIDs []string
}

// GetByEmail implements the store.UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.Doc, m.Err
}

// UpdatePassword implements the store.UserStore interface.
func (m *MockUserStore) UpdatePassword(ctx context.Context, id, password, passwordConfirm string) (*domain.User, error) {
	m.PasswordUpdateIDs = append(m.PasswordUpdateIDs, id)
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, password, passwordConfirm)
	}
	return m.Doc, m.Err
}

// SetResetToken implements the store.UserStore interface.
func (m *MockUserStore) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	m.ResetTokenHashes = append(m.ResetTokenHashes, tokenHash)
	if m.SetResetTokenFn != nil {
		return m.SetResetTokenFn(ctx, id, tokenHash, expires)
	}
	return m.Err
}

// ClearResetToken implements the store.UserStore interface.
func (m *MockUserStore) ClearResetToken(ctx context.Context, id string) error {
	m.ClearedIDs = append(m.ClearedIDs, id)
	if m.ClearResetTokenFn != nil {
		return m.ClearResetTokenFn(ctx, id)
	}
	return m.Err
}

// GetByResetToken implements the store.UserStore interface.
func (m *MockUserStore) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	if m.GetByResetTokenFn != nil {
		return m.GetByResetTokenFn(ctx, tokenHash)
	}
	return m.Doc, m.Err
}

// Deactivate implements the store.UserStore interface.
func (m *MockUserStore) Deactivate(ctx context.Context, id string) error {
	m.DeactivatedIDs = append(m.DeactivatedIDs, id)
	if m.DeactivateFn != nil {
		return m.DeactivateFn(ctx, id)
	}
	return m.Err
}
