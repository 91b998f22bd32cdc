package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/service/auth"
	"github.com/gabcerqueira/natours/internal/store"
)

// userPatchProtected are document fields that a generic partial update may
// never touch. Password changes go through UpdatePassword, soft deletes
// through Deactivate.
var userPatchProtected = []string{
	"password", "passwordChangedAt", "passwordResetToken", "passwordResetExpires", "active",
}

// UserStore implements store.UserStore on a MongoDB collection. It hashes
// passwords before persistence; plaintext never reaches the database.
type UserStore struct {
	coll         *mongo.Collection
	defaultLimit int
}

// NewUserStore creates a MongoDB-backed user store.
func NewUserStore(db *mongo.Database, defaultLimit int) *UserStore {
	return &UserStore{
		coll:         db.Collection(usersCollection),
		defaultLimit: defaultLimit,
	}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// activeScope excludes soft-deleted users from reads.
func activeScope(filter bson.M) bson.M {
	filter["active"] = bson.M{"$ne": false}
	return filter
}

// Find implements store.Resource.Find for users. Soft-deleted users are
// always excluded.
func (s *UserStore) Find(ctx context.Context, q store.ListQuery) ([]domain.User, error) {
	filter, opts, err := BuildFindQuery(q, s.defaultLimit)
	if err != nil {
		return nil, err
	}
	activeScope(filter)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindByID implements store.Resource.FindByID for users. A soft-deleted
// user reads as absent.
func (s *UserStore) FindByID(ctx context.Context, id string, _ bool) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := s.coll.FindOne(ctx, activeScope(bson.M{"_id": oid})).Decode(&user); err != nil {
		return nil, translateFindError(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// Insert implements store.Resource.Insert for users. Pre-write hooks:
// validation (including the password confirmation) and bcrypt hashing of
// the plaintext password.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if user.Password != "" {
		hash, err := auth.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hash
		user.Password = ""
		user.PasswordConfirm = ""
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return translateWriteError(err, store.ErrEmailExists)
	}
	return nil
}

// UpdateByID implements store.Resource.UpdateByID for users. Password and
// soft-delete fields are not patchable through this path.
func (s *UserStore) UpdateByID(ctx context.Context, id string, patch map[string]any) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var existing domain.User
	if err := s.coll.FindOne(ctx, activeScope(bson.M{"_id": oid})).Decode(&existing); err != nil {
		return nil, translateFindError(err, store.ErrUserNotFound)
	}

	merged, err := mergePatch(&existing, patch, userPatchProtected...)
	if err != nil {
		return nil, err
	}
	merged.Email = strings.ToLower(merged.Email)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, merged); err != nil {
		return nil, translateWriteError(err, store.ErrEmailExists)
	}
	return merged, nil
}

// DeleteByID implements store.Resource.DeleteByID for users: a hard delete
// for the admin route. End users soft-delete themselves via Deactivate.
func (s *UserStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := activeScope(bson.M{"email": strings.ToLower(email)})
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateFindError(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// UpdatePassword implements store.UserStore.UpdatePassword. The changed-at
// stamp is backdated one second so a token issued immediately after the
// change is not rejected by the freshness check.
func (s *UserStore) UpdatePassword(ctx context.Context, id string, password, passwordConfirm string) (*domain.User, error) {
	user, err := s.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	user.Password = password
	user.PasswordConfirm = passwordConfirm
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	changedAt := time.Now().UTC().Add(-time.Second)
	update := bson.M{
		"$set": bson.M{
			"password":          hash,
			"passwordChangedAt": changedAt,
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	}
	if _, err := s.coll.UpdateByID(ctx, user.ID, update); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	user.Password = ""
	user.PasswordConfirm = ""
	user.HashedPassword = hash
	user.PasswordChangedAt = changedAt
	user.PasswordResetToken = ""
	user.PasswordResetExpires = time.Time{}
	return user, nil
}

// SetResetToken implements store.UserStore.SetResetToken.
func (s *UserStore) SetResetToken(ctx context.Context, id string, tokenHash string, expires time.Time) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": expires,
	}}
	res, err := s.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// ClearResetToken implements store.UserStore.ClearResetToken.
func (s *UserStore) ClearResetToken(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$unset": bson.M{
		"passwordResetToken":   "",
		"passwordResetExpires": "",
	}}
	if _, err := s.coll.UpdateByID(ctx, oid, update); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// GetByResetToken implements store.UserStore.GetByResetToken. Only an
// unexpired token resolves; an expired or unknown one reads as absent.
func (s *UserStore) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	filter := activeScope(bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": bson.M{"$gt": time.Now().UTC()},
	})

	var user domain.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateFindError(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// Deactivate implements store.UserStore.Deactivate.
func (s *UserStore) Deactivate(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
