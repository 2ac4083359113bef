package domain

// Caller is the identity an operation runs on behalf of.
// The zero value is an anonymous caller.
type Caller struct {
	user *User
}

func Anonymous() Caller {
	return Caller{}
}

func Authenticated(user User) Caller {
	return Caller{user: &user}
}

// User returns the authenticated user, ok is false for anonymous callers.
func (c Caller) User() (User, bool) {
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}
