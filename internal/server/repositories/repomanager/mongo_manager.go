package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/libauth/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// MongoRepositoryManager vends MongoDB-backed repositories.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
}

// NewMongoRepositoryManager connects to uri, verifies the connection and
// makes sure the unique email index exists in database dbName.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string) (*MongoRepositoryManager, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	repo := users.NewMongoRepository(client.Database(dbName).Collection(users.CollectionName))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoRepositoryManager{client: client, users: repo}, nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
