package service

import (
	"context"

	"github.com/kudosboards/kudos/backend/internal/access"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
	"github.com/samber/lo"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, name domain.BoardName, level domain.AccessLevel, caller domain.Caller) (*domain.Board, error)
	Get(ctx context.Context, id domain.BoardId, caller domain.Caller) (*domain.Board, error)
	List(ctx context.Context, caller domain.Caller) ([]domain.Board, error)
	AddUser(ctx context.Context, userId domain.UserId, boardId domain.BoardId, caller domain.Caller) error
	AddMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
	DeleteMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
	Messages(ctx context.Context, board *domain.Board) ([]domain.Message, error)
}

type Board struct {
	storage   BoardStorage
	messages  MessageStorage
	users     UserStorage
	validator BoardValidator
}

// BoardStorage is implemented by every document store backend.
// Absent boards are reported as errors.NotFound("Board", id).
type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error)
	GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	ListBoardsByMember(ctx context.Context, userId domain.UserId) ([]domain.Board, error)
	ListBoardsByAccess(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error)
	// conditional single-board updates, matched/modified as reported by the store
	AppendMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error)
	AppendMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error)
	PullMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error)
}

type UserStorage interface {
	GetUser(ctx context.Context, id domain.UserId) (*domain.User, error)
}

type BoardValidator interface {
	Name(name domain.BoardName) error
	AccessLevel(level domain.AccessLevel) error
}

func NewBoard(storage BoardStorage, messages MessageStorage, users UserStorage, validator BoardValidator) BoardService {
	return &Board{storage: storage, messages: messages, users: users, validator: validator}
}

func (b *Board) Create(ctx context.Context, name domain.BoardName, level domain.AccessLevel, caller domain.Caller) (*domain.Board, error) {
	user, ok := caller.User()
	if !ok {
		return nil, errors.ErrNotAuthenticated
	}
	if err := b.validator.Name(name); err != nil {
		return nil, err
	}
	if err := b.validator.AccessLevel(level); err != nil {
		return nil, err
	}
	level, _ = domain.ParseAccessLevel(string(level))

	data := domain.BoardCreationData{Name: name, AccessLevel: level, Creator: user.Id}
	id, err := b.storage.CreateBoard(ctx, data)
	if err != nil {
		return nil, err
	}
	return &domain.Board{
		Id:          id,
		Name:        name,
		AccessLevel: level,
		Members:     domain.Members{user.Id},
		Messages:    domain.MessageIds{},
	}, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId, caller domain.Caller) (*domain.Board, error) {
	board, err := b.storage.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	return access.ResolveRead(board, caller)
}

// List returns the caller's boards, or every PUBLIC board for anonymous callers.
func (b *Board) List(ctx context.Context, caller domain.Caller) ([]domain.Board, error) {
	if user, ok := caller.User(); ok {
		return b.storage.ListBoardsByMember(ctx, user.Id)
	}
	return b.storage.ListBoardsByAccess(ctx, domain.AccessPublic)
}

// AddUser appends userId to the member list. Adding an existing member
// appends it again; deduplication is left to the caller.
func (b *Board) AddUser(ctx context.Context, userId domain.UserId, boardId domain.BoardId, caller domain.Caller) error {
	user, ok := caller.User()
	if !ok {
		return errors.ErrNotAuthenticated
	}
	board, err := b.storage.GetBoard(ctx, boardId)
	if err != nil {
		return err
	}
	if _, err := b.users.GetUser(ctx, userId); err != nil {
		return err
	}
	if !access.CanWrite(board, user) {
		return errors.ErrNotAuthorized
	}

	res, err := b.storage.AppendMember(ctx, boardId, userId)
	recordUpdate(opAppendMember, res, err)
	if err != nil {
		return err
	}
	if res.Matched != 1 {
		return errors.NotFound("Board", boardId)
	}
	return nil
}

func (b *Board) AddMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	res, err := b.storage.AppendMessage(ctx, boardId, messageId)
	recordUpdate(opAppendMessage, res, err)
	if err != nil {
		return err
	}
	if res.Matched != 1 {
		return errors.NotFound("Board", boardId)
	}
	return nil
}

func (b *Board) DeleteMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	res, err := b.storage.PullMessage(ctx, boardId, messageId)
	recordUpdate(opPullMessage, res, err)
	if err != nil {
		return err
	}
	if res.Matched != 1 {
		return errors.NotFound("Board", boardId)
	}
	if res.Modified == 0 {
		return errors.NotFound("Message", messageId)
	}
	return nil
}

// Messages resolves the board's message references in board order.
// References to messages that no longer exist are skipped.
func (b *Board) Messages(ctx context.Context, board *domain.Board) ([]domain.Message, error) {
	if len(board.Messages) == 0 {
		return []domain.Message{}, nil
	}
	found, err := b.messages.GetMessages(ctx, lo.Uniq(board.Messages))
	if err != nil {
		return nil, err
	}
	byId := lo.KeyBy(found, func(m domain.Message) domain.MessageId { return m.Id })
	return lo.FilterMap(board.Messages, func(id domain.MessageId, _ int) (domain.Message, bool) {
		m, ok := byId[id]
		return m, ok
	}), nil
}
