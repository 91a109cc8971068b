// Package mongo holds the MongoDB-backed user and blog repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Repositories bundles the Mongo implementations of the store ports.
type Repositories struct {
	Users *UserRepository
	Blogs *BlogRepository
}

// NewRepositories builds both repositories on db and ensures their indexes.
func NewRepositories(ctx context.Context, db *mongo.Database) (*Repositories, error) {
	repos := &Repositories{
		Users: NewUserRepository(db),
		Blogs: NewBlogRepository(db),
	}
	if err := repos.Users.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongo users indexes: %w", err)
	}
	if err := repos.Blogs.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongo blogs indexes: %w", err)
	}
	return repos, nil
}

// Ping reports whether the database answers.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, nil)
}
