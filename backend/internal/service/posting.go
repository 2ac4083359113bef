package service

import (
	"context"

	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
	"github.com/kudosboards/kudos/shared/logger"
)

const (
	StepLink   = "link"
	StepDelete = "delete"
)

type PostingService interface {
	Post(ctx context.Context, boardId domain.BoardId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error)
	Relink(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error
	Remove(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error
}

// Posting keeps a board's message list and the standalone message documents
// in step. Each operation is two separate writes; a failure of the second
// write is reported as *errors.StepError and leaves the first in place.
type Posting struct {
	boards   BoardService
	messages MessageService
}

func NewPosting(boards BoardService, messages MessageService) PostingService {
	return &Posting{boards: boards, messages: messages}
}

// Post creates the message, then links it to the board.
// If linking fails the message exists unlinked and can be linked with Relink.
func (p *Posting) Post(ctx context.Context, boardId domain.BoardId, text domain.MsgText, image domain.ImageRef, caller domain.Caller) (*domain.Message, error) {
	message, err := p.messages.Create(ctx, text, image, caller)
	if err != nil {
		return nil, err
	}
	if err := p.boards.AddMessage(ctx, boardId, message.Id); err != nil {
		logger.Log.Warn("message left unlinked", "board", boardId, "message", message.Id, "error", err)
		return message, &errors.StepError{Step: StepLink, MessageId: message.Id, Err: err}
	}
	return message, nil
}

// Relink re-runs the link step for an existing message. Messages with an
// owner can only be relinked by that owner.
func (p *Posting) Relink(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error {
	message, err := p.messages.Get(ctx, messageId)
	if err != nil {
		return err
	}
	if message.HasOwner() {
		if _, err := p.messages.Authorize(ctx, messageId, caller); err != nil {
			return err
		}
	}
	return p.boards.AddMessage(ctx, boardId, messageId)
}

// Remove unlinks the message from the board, then deletes it.
// Ownership is checked up front so a caller that may not delete the
// message cannot unlink it either.
func (p *Posting) Remove(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId, caller domain.Caller) error {
	if _, err := p.messages.Authorize(ctx, messageId, caller); err != nil {
		return err
	}
	if err := p.boards.DeleteMessage(ctx, boardId, messageId); err != nil {
		return err
	}
	if err := p.messages.Delete(ctx, messageId, caller); err != nil {
		logger.Log.Warn("unlinked message not deleted", "board", boardId, "message", messageId, "error", err)
		return &errors.StepError{Step: StepDelete, MessageId: messageId, Err: err}
	}
	return nil
}
