package domain

type User struct {
	Id       UserId   `json:"id"`
	Username Username `json:"username"`
}
