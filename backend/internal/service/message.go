package service

import (
	"context"
	"time"

	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
)

type MessageService interface {
	Create(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	Get(ctx context.Context, id domain.MessageId) (*domain.Message, error)
	Update(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	Delete(ctx context.Context, id domain.MessageId, caller domain.Caller) error
	Authorize(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error)
}

type Message struct {
	storage   MessageStorage
	validator MessageValidator
	now       func() time.Time
}

// MessageStorage is implemented by every document store backend.
// Absent messages are reported as errors.NotFound("Message", id).
type MessageStorage interface {
	CreateMessage(ctx context.Context, data domain.MessageCreationData, at time.Time) (*domain.Message, error)
	GetMessage(ctx context.Context, id domain.MessageId) (*domain.Message, error)
	// GetMessages returns the messages that exist among ids, in no particular order.
	GetMessages(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error)
	UpdateMessage(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error
	DeleteMessage(ctx context.Context, id domain.MessageId) error
}

type MessageValidator interface {
	Text(text domain.MsgText) error
	Image(image domain.ImageRef) error
}

func NewMessage(storage MessageStorage, validator MessageValidator) MessageService {
	return &Message{storage: storage, validator: validator, now: time.Now}
}

// Create stores a standalone message owned by the caller, or ownerless for
// anonymous callers. Linking it to a board is a separate step.
func (m *Message) Create(ctx context.Context, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	if err := m.validate(text, image); err != nil {
		return nil, err
	}
	data := domain.MessageCreationData{Text: text, Image: image}
	if user, ok := caller.User(); ok {
		data.Owner = &user.Id
	}
	return m.storage.CreateMessage(ctx, data, m.now().UTC())
}

func (m *Message) Get(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	return m.storage.GetMessage(ctx, id)
}

func (m *Message) Update(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	message, err := m.Authorize(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	if err := m.validate(text, image); err != nil {
		return nil, err
	}
	at := m.now().UTC()
	if err := m.storage.UpdateMessage(ctx, id, text, image, at); err != nil {
		return nil, err
	}
	message.Text = text
	message.Image = image
	message.ModifiedAt = at
	return message, nil
}

func (m *Message) Delete(ctx context.Context, id domain.MessageId, caller domain.Caller) error {
	if _, err := m.Authorize(ctx, id, caller); err != nil {
		return err
	}
	return m.storage.DeleteMessage(ctx, id)
}

// Authorize loads the message and checks that caller may change it.
// An authenticated caller is required. A message with an owner may only be
// changed by that owner; an ownerless (anonymously posted) message may be
// changed by any authenticated caller.
func (m *Message) Authorize(ctx context.Context, id domain.MessageId, caller domain.Caller) (*domain.Message, error) {
	user, ok := caller.User()
	if !ok {
		return nil, errors.ErrNotAuthenticated
	}
	message, err := m.storage.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.HasOwner() && !message.OwnedBy(user.Id) {
		return nil, errors.ErrNotAuthorized
	}
	return message, nil
}

func (m *Message) validate(text domain.MsgText, image domain.ImageRef) error {
	if err := m.validator.Text(text); err != nil {
		return err
	}
	return m.validator.Image(image)
}
