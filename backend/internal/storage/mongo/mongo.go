// Package mongo stores boards, messages and users in MongoDB collections.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudosboards/kudos/shared/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	boardsCollection   = "boards"
	messagesCollection = "messages"
	usersCollection    = "users"
)

type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(ctx context.Context, uri, database string) (*Storage, error) {
	logger.Log.Info("connecting to mongo", "database", database)
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		// ctx may already be done, disconnect on a fresh one
		return nil, errors.Join(
			fmt.Errorf("failed to ping MongoDB: %w", err),
			client.Disconnect(context.Background()),
		)
	}
	logger.Log.Info("connected to mongo")
	return &Storage{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "members", Value: 1}}},
		{Keys: bson.D{{Key: "access_level", Value: 1}}},
	}
	if _, err := s.boards().Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create board indexes: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Cleanup(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) boards() *mongo.Collection   { return s.db.Collection(boardsCollection) }
func (s *Storage) messages() *mongo.Collection { return s.db.Collection(messagesCollection) }
func (s *Storage) users() *mongo.Collection    { return s.db.Collection(usersCollection) }
