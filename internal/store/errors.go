package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidID is returned when an identifier is not a well-formed
	// ObjectID hex string.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrInvalidQuery is returned when list query parameters cannot be
	// translated into a database query (unknown comparison operator,
	// malformed page/limit, empty field name).
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for the violation list.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrTourNotFound indicates that the requested tour does not exist.
	ErrTourNotFound = fmt.Errorf("%w: tour", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist
	// (or has been soft-deleted).
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrReviewNotFound indicates that the requested review does not exist.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrTourNameExists indicates that a tour with the given name already exists.
	ErrTourNameExists = fmt.Errorf("%w: tour name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
