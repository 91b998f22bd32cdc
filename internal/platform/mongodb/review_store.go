package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/store"
)

// ReviewStore implements store.ReviewStore on a MongoDB collection. After
// every write it recomputes the owning tour's rating aggregate; the
// recomputation is a separate operation, not a transaction with the write.
type ReviewStore struct {
	coll         *mongo.Collection
	users        *mongo.Collection
	tours        *mongo.Collection
	defaultLimit int
}

// NewReviewStore creates a MongoDB-backed review store.
func NewReviewStore(db *mongo.Database, defaultLimit int) *ReviewStore {
	return &ReviewStore{
		coll:         db.Collection(reviewsCollection),
		users:        db.Collection(usersCollection),
		tours:        db.Collection(toursCollection),
		defaultLimit: defaultLimit,
	}
}

// Ensure ReviewStore implements store.ReviewStore.
var _ store.ReviewStore = (*ReviewStore)(nil)

// Find implements store.Resource.Find for reviews. Nested routes scope the
// listing to the parent tour via the query's Scope.
func (s *ReviewStore) Find(ctx context.Context, q store.ListQuery) ([]domain.Review, error) {
	filter, opts, err := BuildFindQuery(q, s.defaultLimit)
	if err != nil {
		return nil, err
	}

	// Scope values addressing the owning refs must compare as ObjectIDs.
	for _, ref := range []string{"tour", "user"} {
		if raw, ok := filter[ref].(string); ok {
			oid, err := parseID(raw)
			if err != nil {
				return nil, err
			}
			filter[ref] = oid
		}
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := []domain.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// FindByID implements store.Resource.FindByID for reviews. When expand is
// true the owning user's name and photo are attached.
func (s *ReviewStore) FindByID(ctx context.Context, id string, expand bool) (*domain.Review, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var review domain.Review
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		return nil, translateFindError(err, store.ErrReviewNotFound)
	}

	if expand {
		var author domain.ReviewAuthor
		err := s.users.FindOne(ctx, bson.M{"_id": review.UserID}).Decode(&author)
		switch {
		case err == nil:
			review.Author = &author
		case errors.Is(err, mongo.ErrNoDocuments):
			// Author deleted since; the review still reads fine.
		default:
			return nil, fmt.Errorf("failed to load review author: %w", err)
		}
	}

	return &review, nil
}

// Insert implements store.Resource.Insert for reviews. Post-write hook:
// the owning tour's rating aggregate is recomputed.
func (s *ReviewStore) Insert(ctx context.Context, review *domain.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.InsertOne(ctx, review); err != nil {
		return translateWriteError(err, store.ErrDuplicate)
	}

	return s.RecalcTourRatings(ctx, review.TourID.Hex())
}

// UpdateByID implements store.Resource.UpdateByID for reviews. The owning
// refs are not patchable; validation re-runs on the merged document, and
// the tour aggregate is recomputed afterwards.
func (s *ReviewStore) UpdateByID(ctx context.Context, id string, patch map[string]any) (*domain.Review, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var existing domain.Review
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		return nil, translateFindError(err, store.ErrReviewNotFound)
	}

	merged, err := mergePatch(&existing, patch, "tour", "user", "author")
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, merged); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if err := s.RecalcTourRatings(ctx, merged.TourID.Hex()); err != nil {
		return nil, err
	}
	return merged, nil
}

// DeleteByID implements store.Resource.DeleteByID for reviews. The tour
// aggregate is recomputed after the delete.
func (s *ReviewStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	var review domain.Review
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		return translateFindError(err, store.ErrReviewNotFound)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrReviewNotFound
	}

	return s.RecalcTourRatings(ctx, review.TourID.Hex())
}

// RecalcTourRatings implements store.ReviewStore.RecalcTourRatings.
func (s *ReviewStore) RecalcTourRatings(ctx context.Context, tourID string) error {
	oid, err := parseID(tourID)
	if err != nil {
		return err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour": oid}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$tour",
			"numRatings": bson.M{"$sum": 1},
			"avgRating":  bson.M{"$avg": "$rating"},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate review ratings: %w", err)
	}

	var stats []struct {
		NumRatings int     `bson:"numRatings"`
		AvgRating  float64 `bson:"avgRating"`
	}
	if err := cur.All(ctx, &stats); err != nil {
		return fmt.Errorf("failed to decode review ratings: %w", err)
	}

	quantity := domain.DefaultRatingsQuantity
	average := domain.DefaultRatingsAverage
	if len(stats) > 0 {
		quantity = stats[0].NumRatings
		average = stats[0].AvgRating
	}

	update := bson.M{"$set": bson.M{
		"ratingsQuantity": quantity,
		"ratingsAverage":  average,
	}}
	if _, err := s.tours.UpdateByID(ctx, oid, update); err != nil {
		return fmt.Errorf("failed to update tour rating aggregate: %w", err)
	}
	return nil
}
