package store

import (
	"context"
	"time"

	"github.com/gabcerqueira/natours/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// The embedded Resource operations serve the admin CRUD routes; Insert and
// UpdateByID hash any plaintext password before storage and never let
// password fields pass through a generic patch. Default reads exclude
// soft-deleted (inactive) users.
type UserStore interface {
	Resource[domain.User]

	// GetByEmail retrieves an active user by email, including the password
	// hash for credential verification. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword validates passwordConfirm against password, rehashes,
	// stamps passwordChangedAt and clears any pending reset token.
	// Returns the updated user.
	UpdatePassword(ctx context.Context, id string, password, passwordConfirm string) (*domain.User, error)

	// SetResetToken stores the one-way hash of a password-reset secret and
	// its expiry on the user record.
	SetResetToken(ctx context.Context, id string, tokenHash string, expires time.Time) error

	// ClearResetToken removes any pending reset token from the user record.
	ClearResetToken(ctx context.Context, id string) error

	// GetByResetToken retrieves the active user whose stored reset-token
	// hash matches and whose expiry has not passed. Returns
	// ErrUserNotFound otherwise.
	GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error)

	// Deactivate soft-deletes a user by clearing the active flag. The
	// record remains in the collection but default reads exclude it.
	Deactivate(ctx context.Context, id string) error
}
