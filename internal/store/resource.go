package store

import "context"

// Resource defines the generic persistence operations the CRUD handler
// factory is parameterized by. Each collection store implements it for its
// entity type.
type Resource[T any] interface {
	// Find runs a list query against the collection and returns the
	// matching documents. Default scopes (secret tours, inactive users)
	// are applied by the implementation. Returns ErrInvalidQuery when the
	// parameters cannot be translated.
	Find(ctx context.Context, q ListQuery) ([]T, error)

	// FindByID retrieves a single document by its ObjectID hex string.
	// Returns ErrInvalidID for a malformed id and the entity-specific
	// not-found error when absent. When expand is true, related data is
	// attached (e.g. the review author's name and photo).
	FindByID(ctx context.Context, id string, expand bool) (*T, error)

	// Insert validates and persists a new document, running the entity's
	// pre-write hooks (slug derivation, password hashing) and post-write
	// hooks (rating aggregate recomputation).
	Insert(ctx context.Context, doc *T) error

	// UpdateByID applies a partial update, re-runs validation on the
	// merged document, and returns the updated document. Returns the
	// entity-specific not-found error when absent.
	UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error)

	// DeleteByID removes a document permanently. Returns the
	// entity-specific not-found error when absent.
	DeleteByID(ctx context.Context, id string) error
}
