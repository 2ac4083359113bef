package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
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

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	doc := boardDoc{
		Id:          uuid.NewString(),
		Name:        data.Name,
		AccessLevel: string(data.AccessLevel),
		Members:     []string{data.Creator},
		Messages:    []string{},
	}
	if _, err := s.boards().InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert board: %w", err)
	}
	return doc.Id, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	var doc boardDoc
	err := s.boards().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, internal_errors.NotFound("Board", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find board %s: %w", id, err)
	}
	board := doc.toDomain()
	return &board, nil
}

func (s *Storage) ListBoardsByMember(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	return s.listBoards(ctx, bson.M{"members": userId})
}

func (s *Storage) ListBoardsByAccess(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error) {
	return s.listBoards(ctx, bson.M{"access_level": string(level)})
}

func (s *Storage) listBoards(ctx context.Context, filter bson.M) ([]domain.Board, error) {
	cursor, err := s.boards().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find boards: %w", err)
	}
	var docs []boardDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}
	boards := make([]domain.Board, 0, len(docs))
	for _, d := range docs {
		boards = append(boards, d.toDomain())
	}
	return boards, nil
}

func (s *Storage) AppendMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error) {
	return s.update(ctx, boardId, bson.M{"$push": bson.M{"members": userId}})
}

func (s *Storage) AppendMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	return s.update(ctx, boardId, bson.M{"$push": bson.M{"messages": messageId}})
}

func (s *Storage) PullMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	return s.update(ctx, boardId, bson.M{"$pull": bson.M{"messages": messageId}})
}

func (s *Storage) update(ctx context.Context, boardId domain.BoardId, update bson.M) (domain.UpdateResult, error) {
	res, err := s.boards().UpdateOne(ctx, bson.M{"_id": boardId}, update)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update board %s: %w", boardId, err)
	}
	return domain.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}
