package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrStalePassword indicates the user changed their password after the
	// token was issued; the token is rejected even if unexpired
	ErrStalePassword = errors.New("password changed after token was issued")

	// ErrWrongPassword indicates a credential check failed
	ErrWrongPassword = errors.New("incorrect email or password")

	// ErrForbidden indicates the caller's role is not permitted for the route
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrResetTokenInvalid indicates a password-reset secret is unknown or expired
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
)
