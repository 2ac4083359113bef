package api

import (
	"time"

	"github.com/kudosboards/kudos/shared/domain"
)

// Request DTOs

type MessageRequest struct {
	Text  string `json:"text" validate:"required"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

// Response DTOs

type MessageResponse struct {
	Id         domain.MessageId `json:"id"`
	Text       domain.MsgText   `json:"text"`
	Html       string           `json:"html"`
	Image      domain.ImageRef  `json:"image,omitempty"`
	Owner      *domain.UserId   `json:"owner,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	ModifiedAt time.Time        `json:"modified_at"`
}
