// Package mongodb implements the store interfaces on top of the MongoDB
// driver: collection stores with explicit pre/post-write hooks, default
// read scopes, and the list query builder.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gabcerqueira/natours/internal/config"
)

// Collection names.
const (
	toursCollection   = "tours"
	usersCollection   = "users"
	reviewsCollection = "reviews"
)

// connectTimeout bounds the initial connect and ping.
const connectTimeout = 10 * time.Second

// Connect establishes and verifies a client connection to MongoDB.
// The returned client owns the connection pool; callers must Disconnect it
// on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}
