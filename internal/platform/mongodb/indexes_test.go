package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The stores translate duplicate-key errors into the duplicate sentinel
// hierarchy; that only works if the matching unique index is declared for
// EnsureIndexes to create.
func TestUniqueIndexes_DeclaredConstraints(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		keys       bson.D
	}{
		{
			name:       "user email is unique",
			collection: usersCollection,
			keys:       bson.D{{Key: "email", Value: 1}},
		},
		{
			name:       "tour name is unique",
			collection: toursCollection,
			keys:       bson.D{{Key: "name", Value: 1}},
		},
		{
			name:       "one review per user per tour",
			collection: reviewsCollection,
			keys:       bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, model := range uniqueIndexes[tt.collection] {
				keys, ok := model.Keys.(bson.D)
				require.True(t, ok, "index keys must be a bson.D")
				if !assert.ObjectsAreEqual(tt.keys, keys) {
					continue
				}
				found = true
				require.NotNil(t, model.Options)
				require.NotNil(t, model.Options.Unique)
				assert.True(t, *model.Options.Unique)
			}
			assert.True(t, found, "no index declared on %v", tt.keys)
		})
	}
}
