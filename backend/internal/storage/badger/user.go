package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
)

type userDoc struct {
	Id       string `bson:"_id"`
	Username string `bson:"username"`
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	var doc userDoc
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, userPrefix+id, &doc)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, internal_errors.NotFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &domain.User{Id: doc.Id, Username: doc.Username}, nil
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return setDoc(txn, userPrefix+user.Id, userDoc{Id: user.Id, Username: user.Username})
	})
	if err != nil {
		return fmt.Errorf("save user %s: %w", user.Id, err)
	}
	return nil
}
