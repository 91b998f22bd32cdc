package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// uniqueIndexes declares the uniqueness constraints the stores rely on.
// Without them duplicate writes succeed and never reach the duplicate-key
// translation in translateWriteError.
var uniqueIndexes = map[string][]mongo.IndexModel{
	usersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	toursCollection: {
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	reviewsCollection: {
		// One review per user per tour.
		{Keys: bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// EnsureIndexes creates the unique indexes at startup. Creating an index
// that already exists with the same spec is a no-op on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range uniqueIndexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}
