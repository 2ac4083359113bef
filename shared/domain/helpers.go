package domain

import (
	"fmt"
	"time"
)

// for debug
func (m *Message) String() string {
	owner := "anonymous"
	if m.Owner != nil {
		owner = *m.Owner
	}
	return fmt.Sprintf("[id:%s, owner:%s, text:%s, image:%s, modified:%s]", m.Id, owner, m.Text, m.Image, m.ModifiedAt.Format(time.StampMilli))
}

func (b *Board) String() string {
	return fmt.Sprintf("[id:%s, name:%s, access:%s, members:%v, messages:%v]", b.Id, b.Name, b.AccessLevel, b.Members, b.Messages)
}

// OwnedBy reports whether the message has a recorded owner equal to userId.
func (m *Message) OwnedBy(userId UserId) bool {
	return m.Owner != nil && *m.Owner == userId
}

func (m *Message) HasOwner() bool {
	return m.Owner != nil
}
