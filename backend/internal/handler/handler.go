package handler

import (
	"context"

	"github.com/kudosboards/kudos/backend/internal/service"
	"github.com/kudosboards/kudos/shared/api"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/samber/lo"
)

// HealthChecker checks connectivity of the configured store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Renderer turns message text into sanitized HTML.
type Renderer interface {
	Render(text string) string
}

type Handler struct {
	board   service.BoardService
	message service.MessageService
	posting service.PostingService
	health  HealthChecker
	md      Renderer
}

func New(board service.BoardService, message service.MessageService, posting service.PostingService, health HealthChecker, md Renderer) *Handler {
	return &Handler{
		board:   board,
		message: message,
		posting: posting,
		health:  health,
		md:      md,
	}
}

func (h *Handler) messageResponse(m domain.Message) api.MessageResponse {
	return api.MessageResponse{
		Id:         m.Id,
		Text:       m.Text,
		Html:       h.md.Render(m.Text),
		Image:      m.Image,
		Owner:      m.Owner,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
	}
}

func (h *Handler) boardResponse(b *domain.Board, messages []domain.Message) api.BoardResponse {
	return api.BoardResponse{
		Id:          b.Id,
		Name:        b.Name,
		AccessLevel: b.AccessLevel,
		Messages:    lo.Map(messages, func(m domain.Message, _ int) api.MessageResponse { return h.messageResponse(m) }),
	}
}

func boardMetadata(b domain.Board, _ int) api.BoardMetadataResponse {
	return api.BoardMetadataResponse{
		Id:          b.Id,
		Name:        b.Name,
		AccessLevel: b.AccessLevel,
		NumMessages: len(b.Messages),
	}
}
