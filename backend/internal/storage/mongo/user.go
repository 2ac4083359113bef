package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userDoc struct {
	Id       string `bson:"_id"`
	Username string `bson:"username"`
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	var doc userDoc
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, internal_errors.NotFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &domain.User{Id: doc.Id, Username: doc.Username}, nil
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	_, err := s.users().ReplaceOne(ctx,
		bson.M{"_id": user.Id},
		userDoc{Id: user.Id, Username: user.Username},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save user %s: %w", user.Id, err)
	}
	return nil
}
