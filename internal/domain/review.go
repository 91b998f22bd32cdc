package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a user's review of a tour. Each review belongs to
// exactly one tour and one user.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Review    string             `bson:"review"        json:"review"`
	Rating    float64            `bson:"rating"        json:"rating"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	TourID    primitive.ObjectID `bson:"tour"          json:"tour"`
	UserID    primitive.ObjectID `bson:"user"          json:"user"`

	// Author carries the owning user's public fields when a read expands
	// related data. Never persisted on the review document.
	Author *ReviewAuthor `bson:"author,omitempty" json:"author,omitempty"`
}

// ReviewAuthor is the projection of the owning user attached to expanded
// review reads.
type ReviewAuthor struct {
	Name  string `bson:"name"            json:"name"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

// NewReview creates a Review with a generated ID and creation timestamp.
// Returns the structured violation list if the fields fail validation.
func NewReview(text string, rating float64, tourID, userID primitive.ObjectID) (*Review, error) {
	r := &Review{
		ID:        primitive.NewObjectID(),
		Review:    text,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
		TourID:    tourID,
		UserID:    userID,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the Review's field constraints.
func (r *Review) Validate() error {
	var v violations

	if r.Review == "" {
		v.add("review", "review cannot be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		v.add("rating", "a rating must be between 1 and 5")
	}
	if r.TourID.IsZero() {
		v.add("tour", "review must belong to a tour")
	}
	if r.UserID.IsZero() {
		v.add("user", "review must belong to a user")
	}

	return v.err()
}
