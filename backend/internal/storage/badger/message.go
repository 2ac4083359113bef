package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
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

func messageKey(id domain.MessageId) string {
	return messagePrefix + id
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
	err := s.db.Update(func(txn *badger.Txn) error {
		return setDoc(txn, messageKey(doc.Id), doc)
	})
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	msg := doc.toDomain()
	return &msg, nil
}

func (s *Storage) GetMessage(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	var doc messageDoc
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, messageKey(id), &doc)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, internal_errors.NotFound("Message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}
	msg := doc.toDomain()
	return &msg, nil
}

func (s *Storage) GetMessages(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var doc messageDoc
			err := getDoc(txn, messageKey(id), &doc)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			messages = append(messages, doc.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	return messages, nil
}

func (s *Storage) UpdateMessage(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		var doc messageDoc
		if err := getDoc(txn, messageKey(id), &doc); err != nil {
			return err
		}
		doc.Text = text
		doc.Image = image
		doc.ModifiedAt = at
		return setDoc(txn, messageKey(id), doc)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return internal_errors.NotFound("Message", id)
	}
	if err != nil {
		return fmt.Errorf("update message %s: %w", id, err)
	}
	return nil
}

func (s *Storage) DeleteMessage(ctx context.Context, id domain.MessageId) error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(messageKey(id))); err != nil {
			return err
		}
		return txn.Delete([]byte(messageKey(id)))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return internal_errors.NotFound("Message", id)
	}
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}
