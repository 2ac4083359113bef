package handler

import (
	"context"
	"net/http"

	"github.com/kudosboards/kudos/shared/domain"
	mw "github.com/kudosboards/kudos/shared/middleware"
)

type MockBoardService struct {
	MockCreate        func(ctx context.Context, name domain.BoardName, level domain.AccessLevel, caller domain.Caller) (*domain.Board, error)
	MockGet           func(ctx context.Context, id domain.BoardId, caller domain.Caller) (*domain.Board, error)
	MockList          func(ctx context.Context, caller domain.Caller) ([]domain.Board, error)
	MockAddUser       func(ctx context.Context, userId domain.UserId, boardId domain.BoardId, caller domain.Caller) error
	MockAddMessage    func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
	MockDeleteMessage func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error
	MockMessages      func(ctx context.Context, board *domain.Board) ([]domain.Message, error)
}

func (m *MockBoardService) Create(ctx context.Context, name domain.BoardName, level domain.AccessLevel, caller domain.Caller) (*domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name, level, caller)
	}
	return &domain.Board{Id: "b1", Name: name, AccessLevel: level}, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId, caller domain.Caller) (*domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id, caller)
	}
	return &domain.Board{Id: id}, nil
}

func (m *MockBoardService) List(ctx context.Context, caller domain.Caller) ([]domain.Board, error) {
	if m.MockList != nil {
		return m.MockList(ctx, caller)
	}
	return nil, nil
}

func (m *MockBoardService) AddUser(ctx context.Context, userId domain.UserId, boardId domain.BoardId, caller domain.Caller) error {
	if m.MockAddUser != nil {
		return m.MockAddUser(ctx, userId, boardId, caller)
	}
	return nil
}

func (m *MockBoardService) AddMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	if m.MockAddMessage != nil {
		return m.MockAddMessage(ctx, boardId, messageId)
	}
	return nil
}

func (m *MockBoardService) DeleteMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) error {
	if m.MockDeleteMessage != nil {
		return m.MockDeleteMessage(ctx, boardId, messageId)
	}
	return nil
}

func (m *MockBoardService) Messages(ctx context.Context, board *domain.Board) ([]domain.Message, error) {
	if m.MockMessages != nil {
		return m.MockMessages(ctx, board)
	}
	return []domain.Message{}, nil
}

type MockMessageService struct {
	MockCreate    func(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	MockGet       func(ctx context.Context, id domain.MessageId) (*domain.Message, error)
	MockUpdate    func(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	MockDelete    func(ctx context.Context, id domain.MessageId, caller domain.Caller) error
	MockAuthorize func(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error)
}

func (m *MockMessageService) Create(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, text, image, caller)
	}
	return &domain.Message{Id: "m1", Text: text, Image: image}, nil
}

func (m *MockMessageService) Get(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Message{Id: id}, nil
}

func (m *MockMessageService) Update(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, text, image, caller)
	}
	return &domain.Message{Id: id, Text: text, Image: image}, nil
}

func (m *MockMessageService) Delete(ctx context.Context, id domain.MessageId, caller domain.Caller) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, caller)
	}
	return nil
}

func (m *MockMessageService) Authorize(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error) {
	if m.MockAuthorize != nil {
		return m.MockAuthorize(ctx, id, caller)
	}
	return &domain.Message{Id: id}, nil
}

type MockPostingService struct {
	MockPost   func(ctx context.Context, boardId domain.BoardId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	MockRelink func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error
	MockRemove func(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error
}

func (m *MockPostingService) Post(ctx context.Context, boardId domain.BoardId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if m.MockPost != nil {
		return m.MockPost(ctx, boardId, text, image, caller)
	}
	return &domain.Message{Id: "m1", Text: text, Image: image}, nil
}

func (m *MockPostingService) Relink(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error {
	if m.MockRelink != nil {
		return m.MockRelink(ctx, boardId, messageId, caller)
	}
	return nil
}

func (m *MockPostingService) Remove(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error {
	if m.MockRemove != nil {
		return m.MockRemove(ctx, boardId, messageId, caller)
	}
	return nil
}

type MockRenderer struct{}

func (MockRenderer) Render(text string) string {
	return "<p>" + text + "</p>"
}

var alice = domain.User{Id: "alice", Username: "Alice"}

// asCaller stores caller the way the auth middleware does.
func asCaller(r *http.Request, caller domain.Caller) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), mw.CallerKey, caller))
}
