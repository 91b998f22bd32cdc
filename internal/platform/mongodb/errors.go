package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gabcerqueira/natours/internal/store"
)

// parseID converts an ObjectID hex string, translating a malformed id into
// the store taxonomy so handlers can map it to a 400.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// translateFindError maps driver-level read errors to the store taxonomy.
// notFound is the entity-specific sentinel for the collection.
func translateFindError(err error, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}

// translateWriteError maps driver-level write errors to the store
// taxonomy. duplicate is the entity-specific sentinel for the collection's
// unique index.
func translateWriteError(err error, duplicate error) error {
	if mongo.IsDuplicateKeyError(err) {
		return duplicate
	}
	return err
}
