package api

import (
	"errors"
	"net/http"

	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/service/auth"
	"github.com/gabcerqueira/natours/internal/store"

	"github.com/gabcerqueira/natours/internal/api/shared"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrStalePassword),
		errors.Is(err, auth.ErrWrongPassword):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors: malformed input, failed validation, duplicate
	// unique field, invalid id format, untranslatable list query,
	// invalid or expired reset token
	case errors.Is(err, ErrMalformedBody),
		store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidID),
		errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, auth.ErrResetTokenInvalid):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Your token has expired! Please log in again"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "This token is invalid, please log in again"

	case errors.Is(err, auth.ErrMissingToken):
		return "You are not logged in! Please log in to get access"

	case errors.Is(err, auth.ErrStalePassword):
		return "User recently changed password! Please log in again"

	case errors.Is(err, auth.ErrWrongPassword):
		return "Incorrect email or password"

	case errors.Is(err, auth.ErrForbidden):
		return "You do not have permission to perform this action"

	case errors.Is(err, auth.ErrResetTokenInvalid):
		return "Token is invalid or has expired"

	case errors.Is(err, store.ErrTourNotFound):
		return "No tour found with that ID"

	case errors.Is(err, store.ErrUserNotFound):
		return "No user found with that ID"

	case errors.Is(err, store.ErrReviewNotFound):
		return "No review found with that ID"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "This email is already in use"

	case errors.Is(err, store.ErrTourNameExists):
		return "A tour with this name already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Duplicate field value"

	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidQuery):
		return "Invalid query parameters"

	case errors.Is(err, ErrMalformedBody):
		return "Invalid request format"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		// Validation messages are written for users; pass the violation
		// list through.
		return "Invalid input data: " + err.Error()

	default:
		return "Something went wrong!"
	}
}

// HandleAPIError translates an internal error into an error response,
// using the optional userMessage instead of the derived safe message when
// provided.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
