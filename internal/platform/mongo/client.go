package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"mcms/internal/platform/config"
)

// Collection names.
const (
	CollectionUsers         = "users"
	CollectionCamps         = "camps"
	CollectionRegistrations = "registeredCamps"
	CollectionPayments      = "payments"
	CollectionFeedback      = "feedback"
)

// Client wraps the driver client with the application database handle.
// It is created once in main and handed to every store.
type Client struct {
	*mongo.Client
	db *mongo.Database
}

// New connects to MongoDB using the stable v1 server API and pings the
// primary before returning.
func New(ctx context.Context, cfg config.StoreConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &Client{Client: client, db: client.Database(cfg.Database)}, nil
}

// Collection returns a handle on the named collection.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Health checks if the MongoDB connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}

// EnsureIndexes creates lookup indexes. None of them is unique: the
// (campId, userEmail) pair is guarded by a read-before-insert check only.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		CollectionRegistrations: {
			{Keys: bson.D{{Key: "campId", Value: 1}, {Key: "userEmail", Value: 1}}},
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
		},
		CollectionFeedback: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := c.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
