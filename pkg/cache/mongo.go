package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache implements a MongoDB-backed cache for durable deployments.
// Entries carry an expires_at field; a TTL index created at startup lets
// MongoDB evict expired entries in the background, and Get double-checks
// expiration for entries the reaper has not collected yet.
type MongoCache struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures a MongoDB cache connection.
type MongoConfig struct {
	URI        string // connection string (default "mongodb://localhost:27017")
	Database   string // default "spoke"
	Collection string // default "cache"
}

// mongoEntry is the stored document shape.
type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache creates a MongoDB-backed cache, verifies connectivity, and
// ensures the TTL index exists.
func NewMongoCache(ctx context.Context, cfg MongoConfig) (Cache, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "spoke"
	}
	if cfg.Collection == "" {
		cfg.Collection = "cache"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	// expireAfterSeconds=0 evicts documents as soon as expires_at passes.
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoCache{client: client, collection: coll}, nil
}

// Get retrieves a value from MongoDB.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value in MongoDB, replacing any existing entry.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	_, err := c.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		entry,
		options.Replace().SetUpsert(true))
	return err
}

// Delete removes a value from MongoDB.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects from MongoDB.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Ensure MongoCache implements Cache.
var _ Cache = (*MongoCache)(nil)
