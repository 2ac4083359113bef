package domain

import (
	"time"
)

type MessageCreationData struct {
	Text  MsgText
	Image ImageRef
	Owner *UserId
}

type Message struct {
	Id         MessageId `json:"id"`
	Text       MsgText   `json:"text"`
	Image      ImageRef  `json:"image,omitempty"`
	Owner      *UserId   `json:"owner,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}
