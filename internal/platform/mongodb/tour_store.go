package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/store"
)

// TourStore implements store.TourStore on a MongoDB collection.
type TourStore struct {
	coll         *mongo.Collection
	reviews      *mongo.Collection
	defaultLimit int
}

// NewTourStore creates a MongoDB-backed tour store. defaultLimit is the
// page size applied when a list request does not specify one.
func NewTourStore(db *mongo.Database, defaultLimit int) *TourStore {
	return &TourStore{
		coll:         db.Collection(toursCollection),
		reviews:      db.Collection(reviewsCollection),
		defaultLimit: defaultLimit,
	}
}

// Ensure TourStore implements store.TourStore.
var _ store.TourStore = (*TourStore)(nil)

// secretTourScope excludes secret tours from listings and aggregations.
func secretTourScope(filter bson.M) bson.M {
	filter["secretTour"] = bson.M{"$ne": true}
	return filter
}

// Find implements store.Resource.Find for tours. Secret tours are always
// excluded, regardless of request parameters.
func (s *TourStore) Find(ctx context.Context, q store.ListQuery) ([]domain.Tour, error) {
	filter, opts, err := BuildFindQuery(q, s.defaultLimit)
	if err != nil {
		return nil, err
	}
	secretTourScope(filter)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	tours := []domain.Tour{}
	if err := cur.All(ctx, &tours); err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

// FindByID implements store.Resource.FindByID for tours. Secret tours read
// as absent. When expand is true the tour's reviews are attached.
func (s *TourStore) FindByID(ctx context.Context, id string, expand bool) (*domain.Tour, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var tour domain.Tour
	if err := s.coll.FindOne(ctx, secretTourScope(bson.M{"_id": oid})).Decode(&tour); err != nil {
		return nil, translateFindError(err, store.ErrTourNotFound)
	}

	if expand {
		cur, err := s.reviews.Find(ctx, bson.M{"tour": oid})
		if err != nil {
			return nil, fmt.Errorf("failed to load tour reviews: %w", err)
		}
		if err := cur.All(ctx, &tour.Reviews); err != nil {
			return nil, fmt.Errorf("failed to decode tour reviews: %w", err)
		}
	}

	return &tour, nil
}

// Insert implements store.Resource.Insert for tours. Pre-write hooks:
// slug derivation and validation.
func (s *TourStore) Insert(ctx context.Context, tour *domain.Tour) error {
	tour.DeriveSlug()
	if err := tour.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.InsertOne(ctx, tour); err != nil {
		return translateWriteError(err, store.ErrTourNameExists)
	}
	return nil
}

// UpdateByID implements store.Resource.UpdateByID for tours. The slug is
// recomputed whenever the patch changes the name, and validation is re-run
// on the merged document before it replaces the stored one.
func (s *TourStore) UpdateByID(ctx context.Context, id string, patch map[string]any) (*domain.Tour, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var existing domain.Tour
	if err := s.coll.FindOne(ctx, secretTourScope(bson.M{"_id": oid})).Decode(&existing); err != nil {
		return nil, translateFindError(err, store.ErrTourNotFound)
	}

	merged, err := mergePatch(&existing, patch, "slug", "ratingsAverage", "ratingsQuantity")
	if err != nil {
		return nil, err
	}
	if _, ok := patch["name"]; ok {
		merged.DeriveSlug()
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, merged); err != nil {
		return nil, translateWriteError(err, store.ErrTourNameExists)
	}
	return merged, nil
}

// DeleteByID implements store.Resource.DeleteByID for tours.
func (s *TourStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, secretTourScope(bson.M{"_id": oid}))
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrTourNotFound
	}
	return nil
}

// Stats implements store.TourStore.Stats.
func (s *TourStore) Stats(ctx context.Context) ([]store.TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: secretTourScope(bson.M{"ratingsAverage": bson.M{"$gte": 4.5}})}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$difficulty",
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tour stats: %w", err)
	}

	stats := []store.TourStats{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode tour stats: %w", err)
	}
	return stats, nil
}

// MonthlyPlan implements store.TourStore.MonthlyPlan.
func (s *TourStore) MonthlyPlan(ctx context.Context, year int) ([]store.MonthlyPlanEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: secretTourScope(bson.M{})}},
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: bson.M{
			"startDates": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$sort", Value: bson.M{"numTourStarts": -1}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly plan: %w", err)
	}

	plan := []store.MonthlyPlanEntry{}
	if err := cur.All(ctx, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode monthly plan: %w", err)
	}
	return plan, nil
}
