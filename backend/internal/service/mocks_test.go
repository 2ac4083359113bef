package service

import (
	"context"
	"time"

	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
)

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	createBoardFunc        func(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error)
	getBoardFunc           func(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	listBoardsByMemberFunc func(ctx context.Context, userId domain.UserId) ([]domain.Board, error)
	listBoardsByAccessFunc func(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error)
	appendMemberFunc       func(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error)
	appendMessageFunc      func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error)
	pullMessageFunc        func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error)
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, data)
	}
	return "b-new", nil
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, id)
	}
	return nil, errors.NotFound("Board", id)
}

func (m *MockBoardStorage) ListBoardsByMember(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	if m.listBoardsByMemberFunc != nil {
		return m.listBoardsByMemberFunc(ctx, userId)
	}
	return nil, nil
}

func (m *MockBoardStorage) ListBoardsByAccess(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error) {
	if m.listBoardsByAccessFunc != nil {
		return m.listBoardsByAccessFunc(ctx, level)
	}
	return nil, nil
}

func (m *MockBoardStorage) AppendMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error) {
	if m.appendMemberFunc != nil {
		return m.appendMemberFunc(ctx, boardId, userId)
	}
	return domain.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (m *MockBoardStorage) AppendMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	if m.appendMessageFunc != nil {
		return m.appendMessageFunc(ctx, boardId, messageId)
	}
	return domain.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (m *MockBoardStorage) PullMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	if m.pullMessageFunc != nil {
		return m.pullMessageFunc(ctx, boardId, messageId)
	}
	return domain.UpdateResult{Matched: 1, Modified: 1}, nil
}

// MockMessageStorage mocks the MessageStorage interface.
type MockMessageStorage struct {
	createMessageFunc func(ctx context.Context, data domain.MessageCreationData, at time.Time) (*domain.Message, error)
	getMessageFunc    func(ctx context.Context, id domain.MessageId) (*domain.Message, error)
	getMessagesFunc   func(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error)
	updateMessageFunc func(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error
	deleteMessageFunc func(ctx context.Context, id domain.MessageId) error
}

func (m *MockMessageStorage) CreateMessage(ctx context.Context, data domain.MessageCreationData, at time.Time) (*domain.Message, error) {
	if m.createMessageFunc != nil {
		return m.createMessageFunc(ctx, data, at)
	}
	return &domain.Message{Id: "m-new", Text: data.Text, Image: data.Image, Owner: data.Owner, CreatedAt: at, ModifiedAt: at}, nil
}

func (m *MockMessageStorage) GetMessage(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	if m.getMessageFunc != nil {
		return m.getMessageFunc(ctx, id)
	}
	return nil, errors.NotFound("Message", id)
}

func (m *MockMessageStorage) GetMessages(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error) {
	if m.getMessagesFunc != nil {
		return m.getMessagesFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockMessageStorage) UpdateMessage(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error {
	if m.updateMessageFunc != nil {
		return m.updateMessageFunc(ctx, id, text, image, at)
	}
	return nil
}

func (m *MockMessageStorage) DeleteMessage(ctx context.Context, id domain.MessageId) error {
	if m.deleteMessageFunc != nil {
		return m.deleteMessageFunc(ctx, id)
	}
	return nil
}

// MockUserStorage mocks the UserStorage interface.
type MockUserStorage struct {
	getUserFunc func(ctx context.Context, id domain.UserId) (*domain.User, error)
}

func (m *MockUserStorage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return &domain.User{Id: id, Username: "user-" + id}, nil
}

// MockBoardValidator mocks the BoardValidator interface.
type MockBoardValidator struct {
	nameFunc        func(name domain.BoardName) error
	accessLevelFunc func(level domain.AccessLevel) error
}

func (m *MockBoardValidator) Name(name domain.BoardName) error {
	if m.nameFunc != nil {
		return m.nameFunc(name)
	}
	return nil
}

func (m *MockBoardValidator) AccessLevel(level domain.AccessLevel) error {
	if m.accessLevelFunc != nil {
		return m.accessLevelFunc(level)
	}
	return nil
}

// MockMessageValidator mocks the MessageValidator interface.
type MockMessageValidator struct {
	textFunc  func(text domain.MsgText) error
	imageFunc func(image domain.ImageRef) error
}

func (m *MockMessageValidator) Text(text domain.MsgText) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}

func (m *MockMessageValidator) Image(image domain.ImageRef) error {
	if m.imageFunc != nil {
		return m.imageFunc(image)
	}
	return nil
}

// MockBoardService mocks BoardService for posting tests.
type MockBoardService struct {
	BoardService
	addMessageFunc    func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
	deleteMessageFunc func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
}

func (m *MockBoardService) AddMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	if m.addMessageFunc != nil {
		return m.addMessageFunc(ctx, boardId, messageId)
	}
	return nil
}

func (m *MockBoardService) DeleteMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	if m.deleteMessageFunc != nil {
		return m.deleteMessageFunc(ctx, boardId, messageId)
	}
	return nil
}

// MockMessageService mocks MessageService for posting tests.
type MockMessageService struct {
	createFunc    func(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	getFunc       func(ctx context.Context, id domain.MessageId) (*domain.Message, error)
	updateFunc    func(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	deleteFunc    func(ctx context.Context, id domain.MessageId, caller domain.Caller) error
	authorizeFunc func(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error)
}

func (m *MockMessageService) Create(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, text, image, caller)
	}
	return &domain.Message{Id: "m-new", Text: text, Image: image}, nil
}

func (m *MockMessageService) Get(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.Message{Id: id}, nil
}

func (m *MockMessageService) Update(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, text, image, caller)
	}
	return &domain.Message{Id: id, Text: text, Image: image}, nil
}

func (m *MockMessageService) Delete(ctx context.Context, id domain.MessageId, caller domain.Caller) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, caller)
	}
	return nil
}

func (m *MockMessageService) Authorize(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error) {
	if m.authorizeFunc != nil {
		return m.authorizeFunc(ctx, id, caller)
	}
	return &domain.Message{Id: id}, nil
}
