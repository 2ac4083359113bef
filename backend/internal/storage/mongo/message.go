package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type messageDoc struct {
	Id         string    `bson:"_id"`
	Text       string    `bson:"text"`
	Image      string    `bson:"image"`
	Owner      *string   `bson:"owner,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	ModifiedAt time.Time `bson:"modified_at"`
}

func (d messageDoc) toDomain() domain.Message {
	return domain.Message{
		Id:         d.Id,
		Text:       d.Text,
		Image:      d.Image,
		Owner:      d.Owner,
		CreatedAt:  d.CreatedAt.UTC(),
		ModifiedAt: d.ModifiedAt.UTC(),
	}
}

func (s *Storage) CreateMessage(ctx context.Context, data domain.MessageCreationData, at time.Time) (*domain.Message, error) {
	doc := messageDoc{
		Id:         uuid.NewString(),
		Text:       data.Text,
		Image:      data.Image,
		Owner:      data.Owner,
		CreatedAt:  at,
		ModifiedAt: at,
	}
	if _, err := s.messages().InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	msg := doc.toDomain()
	return &msg, nil
}

func (s *Storage) GetMessage(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	var doc messageDoc
	err := s.messages().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, internal_errors.NotFound("Message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", id, err)
	}
	msg := doc.toDomain()
	return &msg, nil
}

func (s *Storage) GetMessages(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error) {
	if len(ids) == 0 {
		return []domain.Message{}, nil
	}
	cursor, err := s.messages().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	messages := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, d.toDomain())
	}
	return messages, nil
}

func (s *Storage) UpdateMessage(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error {
	res, err := s.messages().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"text":        text,
		"image":       image,
		"modified_at": at,
	}})
	if err != nil {
		return fmt.Errorf("update message %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Message", id)
	}
	return nil
}

func (s *Storage) DeleteMessage(ctx context.Context, id domain.MessageId) error {
	res, err := s.messages().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return internal_errors.NotFound("Message", id)
	}
	return nil
}
