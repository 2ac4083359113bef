package domain

type (
	UserId    = string
	Username  = string
	BoardId   = string
	BoardName = string
	MessageId = string
	MsgText   = string
	ImageRef  = string

	Members    = []UserId
	MessageIds = []MessageId
)
