package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	"github.com/samber/lo"
)

type boardDoc struct {
	Id          string   `bson:"_id"`
	Name        string   `bson:"name"`
	AccessLevel string   `bson:"access_level"`
	Members     []string `bson:"members"`
	Messages    []string `bson:"messages"`
}

func (d boardDoc) toDomain() domain.Board {
	board := domain.Board{
		Id:          d.Id,
		Name:        d.Name,
		AccessLevel: domain.AccessLevel(d.AccessLevel),
		Members:     d.Members,
		Messages:    d.Messages,
	}
	if board.Members == nil {
		board.Members = domain.Members{}
	}
	if board.Messages == nil {
		board.Messages = domain.MessageIds{}
	}
	return board
}

func boardKey(id domain.BoardId) string {
	return boardPrefix + id
}

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	doc := boardDoc{
		Id:          uuid.NewString(),
		Name:        data.Name,
		AccessLevel: string(data.AccessLevel),
		Members:     []string{data.Creator},
		Messages:    []string{},
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return setDoc(txn, boardKey(doc.Id), doc)
	})
	if err != nil {
		return "", fmt.Errorf("insert board: %w", err)
	}
	return doc.Id, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	var doc boardDoc
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, boardKey(id), &doc)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, internal_errors.NotFound("Board", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get board %s: %w", id, err)
	}
	board := doc.toDomain()
	return &board, nil
}

func (s *Storage) ListBoardsByMember(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	return s.listBoards(func(d boardDoc) bool { return lo.Contains(d.Members, userId) })
}

func (s *Storage) ListBoardsByAccess(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error) {
	return s.listBoards(func(d boardDoc) bool { return d.AccessLevel == string(level) })
}

func (s *Storage) listBoards(match func(boardDoc) bool) ([]domain.Board, error) {
	boards := []domain.Board{}
	err := s.db.View(func(txn *badger.Txn) error {
		return scan(txn, boardPrefix, func(d boardDoc) {
			if match(d) {
				boards = append(boards, d.toDomain())
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

func (s *Storage) AppendMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error) {
	return s.modifyBoard(ctx, boardId, func(d *boardDoc) bool {
		d.Members = append(d.Members, userId)
		return true
	})
}

func (s *Storage) AppendMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	return s.modifyBoard(ctx, boardId, func(d *boardDoc) bool {
		d.Messages = append(d.Messages, messageId)
		return true
	})
}

func (s *Storage) PullMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	return s.modifyBoard(ctx, boardId, func(d *boardDoc) bool {
		before := len(d.Messages)
		d.Messages = slices.DeleteFunc(d.Messages, func(id string) bool { return id == messageId })
		return len(d.Messages) != before
	})
}

// modifyBoard applies change to the board document in one serializable
// transaction. change reports whether it modified the document.
func (s *Storage) modifyBoard(ctx context.Context, boardId domain.BoardId, change func(d *boardDoc) bool) (domain.UpdateResult, error) {
	var result domain.UpdateResult
	err := s.update(ctx, func(txn *badger.Txn) error {
		result = domain.UpdateResult{}
		var doc boardDoc
		err := getDoc(txn, boardKey(boardId), &doc)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		result.Matched = 1
		if !change(&doc) {
			return nil
		}
		result.Modified = 1
		return setDoc(txn, boardKey(boardId), doc)
	})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update board %s: %w", boardId, err)
	}
	return result, nil
}
