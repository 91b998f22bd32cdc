package store

import (
	"context"

	"github.com/gabcerqueira/natours/internal/domain"
)

// ReviewStore defines the interface for review data persistence.
//
// Every write (insert, update, delete) recomputes the owning tour's
// ratingsQuantity and ratingsAverage as an explicit post-write step. The
// recomputation is not transactional with the write; a crash between the
// two leaves a stale aggregate until the next review write.
type ReviewStore interface {
	Resource[domain.Review]

	// RecalcTourRatings recomputes the rating aggregate of the given tour
	// from all its reviews and writes it to the tour document. With no
	// reviews left, the aggregate resets to the schema defaults.
	RecalcTourRatings(ctx context.Context, tourID string) error
}
