package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gabcerqueira/natours/internal/store"
)

// mergePatch applies a partial update onto an existing document by round-
// tripping through bson, so patch keys address the stored field names.
// Keys listed in protected are dropped silently; identity and derived
// fields are never patchable through the generic update path.
func mergePatch[T any](existing *T, patch map[string]any, protected ...string) (*T, error) {
	raw, err := bson.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode existing document: %w", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode existing document: %w", err)
	}

	skip := map[string]struct{}{"_id": {}, "createdAt": {}}
	for _, key := range protected {
		skip[key] = struct{}{}
	}

	for key, value := range patch {
		if _, ok := skip[key]; ok {
			continue
		}
		doc[key] = value
	}

	merged, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged document: %w", err)
	}

	out := new(T)
	if err := bson.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return out, nil
}
