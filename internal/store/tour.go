package store

import (
	"context"

	"github.com/gabcerqueira/natours/internal/domain"
)

// TourStore defines the interface for tour data persistence.
type TourStore interface {
	Resource[domain.Tour]

	// Stats aggregates non-secret tours with a ratings average of at least
	// 4.5, grouped by difficulty and sorted by average price ascending.
	Stats(ctx context.Context) ([]TourStats, error)

	// MonthlyPlan groups the tour starts of the given year by month,
	// sorted by number of starts descending.
	MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlanEntry, error)
}

// TourStats is one per-difficulty row of the tour statistics aggregation.
type TourStats struct {
	Difficulty string  `bson:"_id"        json:"difficulty"`
	NumTours   int     `bson:"numTours"   json:"numTours"`
	NumRatings int     `bson:"numRatings" json:"numRatings"`
	AvgRating  float64 `bson:"avgRating"  json:"avgRating"`
	AvgPrice   float64 `bson:"avgPrice"   json:"avgPrice"`
	MinPrice   float64 `bson:"minPrice"   json:"minPrice"`
	MaxPrice   float64 `bson:"maxPrice"   json:"maxPrice"`
}

// MonthlyPlanEntry is one per-month row of the monthly plan aggregation.
type MonthlyPlanEntry struct {
	Month         int      `bson:"month"         json:"month"`
	NumTourStarts int      `bson:"numTourStarts" json:"numTourStarts"`
	Tours         []string `bson:"tours"         json:"tours"`
}
