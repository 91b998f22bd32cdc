package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT bearer token carrying the user's
	// identifier as subject. Returns the token string or an error if
	// signing fails.
	GenerateToken(ctx context.Context, userID string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken past the configured lifetime and
	// ErrInvalidToken for a malformed token or bad signature.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the subject the token was issued for (ObjectID hex).
	UserID string `json:"sub,omitempty"`

	// IssuedAt is when the token was signed. The authorization middleware
	// compares it against the user's password-changed timestamp.
	IssuedAt time.Time `json:"iat,omitempty"`

	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time `json:"exp,omitempty"`

	// ID is the unique token identifier (jti).
	ID string `json:"jti,omitempty"`
}
