package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewReview(t *testing.T) {
	tourID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	review, err := NewReview("Amazing experience!", 5, tourID, userID)
	require.NoError(t, err)

	assert.False(t, review.ID.IsZero())
	assert.False(t, review.CreatedAt.IsZero())
	assert.Equal(t, tourID, review.TourID)
	assert.Equal(t, userID, review.UserID)
}

func TestReviewValidate(t *testing.T) {
	tourID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	tests := []struct {
		name   string
		text   string
		rating float64
		tour   primitive.ObjectID
		user   primitive.ObjectID
	}{
		{"empty text", "", 4, tourID, userID},
		{"rating too low", "ok", 0.5, tourID, userID},
		{"rating too high", "ok", 5.5, tourID, userID},
		{"missing tour", "ok", 4, primitive.NilObjectID, userID},
		{"missing user", "ok", 4, tourID, primitive.NilObjectID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReview(tc.text, tc.rating, tc.tour, tc.user)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
