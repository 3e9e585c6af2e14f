package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. All three are schema-on-read: the crawler owns the write
// side of events and notices, this service owns hotClicks.
const (
	colHotClicks = "hotClicks"
	colEvents    = "events"
	colNotices   = "notices"
)

// Config holds document-store configuration
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		URI:      "mongodb://localhost:27017",
		Database: "campushot",
		Timeout:  10 * time.Second,
	}
}

// Mongo wraps the client and database handles shared by the stores
type Mongo struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// New connects to MongoDB, verifies the connection, and bootstraps indexes
func New(cfg Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m := &Mongo{
		client:  client,
		db:      client.Database(cfg.Database),
		timeout: cfg.Timeout,
	}

	if err := m.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return m, nil
}

func (m *Mongo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	// Leaderboard queries sort hotClicks by count descending.
	_, err := m.db.Collection(colHotClicks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "count", Value: -1}},
	})
	if err != nil {
		return err
	}

	// Recency-window queries filter and sort events by the typed date field.
	_, err = m.db.Collection(colEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	return err
}

// Collection returns a handle to a named collection
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Close disconnects from MongoDB
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
