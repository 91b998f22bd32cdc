package mocks

import (
	"context"

	"github.com/gabcerqueira/natours/internal/store"
)

// MockResource implements store.Resource[T] for testing.
type MockResource[T any] struct {
	// Custom behavior functions
	FindFn       func(ctx context.Context, q store.ListQuery) ([]T, error)
	FindByIDFn   func(ctx context.Context, id string, expand bool) (*T, error)
	InsertFn     func(ctx context.Context, entity *T) error
	UpdateByIDFn func(ctx context.Context, id string, patch map[string]any) (*T, error)
	DeleteByIDFn func(ctx context.Context, id string) error

	// Default response values
	Docs []T
	Doc  *T
	Err  error

	// Call tracking for verification
	FindQueries []store.ListQuery
	Inserted    []*T
	Patches     []map[string]any
	DeletedIDs  []string
}

// Find implements the store.Resource interface.
func (m *MockResource[T]) Find(ctx context.Context, q store.ListQuery) ([]T, error) {
	m.FindQueries = append(m.FindQueries, q)
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return m.Docs, m.Err
}

// FindByID implements the store.Resource interface.
func (m *MockResource[T]) FindByID(ctx context.Context, id string, expand bool) (*T, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id, expand)
	}
	return m.Doc, m.Err
}

// Insert implements the store.Resource interface.
func (m *MockResource[T]) Insert(ctx context.Context, entity *T) error {
	m.Inserted = append(m.Inserted, entity)
	if m.InsertFn != nil {
		return m.InsertFn(ctx, entity)
	}
	return m.Err
}

// UpdateByID implements the store.Resource interface.
func (m *MockResource[T]) UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error) {
	m.Patches = append(m.Patches, patch)
	if m.UpdateByIDFn != nil {
		return m.UpdateByIDFn(ctx, id, patch)
	}
	return m.Doc, m.Err
}

// DeleteByID implements the store.Resource interface.
func (m *MockResource[T]) DeleteByID(ctx context.Context, id string) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	return m.Err
}
