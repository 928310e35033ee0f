package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names used by the MongoDB stores.
const (
	AccountsCollection = "users"
	ProjectsCollection = "projects"
)

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// Mongo wraps a MongoDB client bound to one database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	config MongoConfig
}

// NewMongo creates a new, unconnected MongoDB handle
func NewMongo(cfg MongoConfig) *Mongo {
	return &Mongo{config: cfg}
}

// Connect opens the client and verifies the server is reachable
func (m *Mongo) Connect(ctx context.Context) error {
	client, err := mongo.Connect(options.Client().ApplyURI(m.config.URI))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	m.client = client
	m.db = client.Database(m.config.Database)
	return nil
}

// Close disconnects the client
func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(context.Background())
}

// Ping checks the server connection
func (m *Mongo) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrConnection
	}
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Collection returns a handle to the named collection
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// EnsureIndexes creates the indexes the stores rely on. The unique email
// index is what turns a lost registration race into a duplicate key error.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if m.db == nil {
		return ErrConnection
	}

	_, err := m.Collection(AccountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("%w: account indexes: %v", ErrQuery, err)
	}

	_, err = m.Collection(ProjectsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tech_stack", Value: 1}}},
		{Keys: bson.D{{Key: "budget", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: project indexes: %v", ErrQuery, err)
	}
	return nil
}
