package domain

import (
	"fmt"
	"strings"
)

type AccessLevel string

const (
	AccessPublic  AccessLevel = "PUBLIC"
	AccessLink    AccessLevel = "LINK"
	AccessPrivate AccessLevel = "PRIVATE"
)

// ParseAccessLevel accepts the level name in any case.
func ParseAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch level {
	case AccessPublic, AccessLink, AccessPrivate:
		return level, nil
	}
	return "", fmt.Errorf("unknown access level %q", s)
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name        BoardName
	AccessLevel AccessLevel
	Creator     UserId
}

type Board struct {
	Id          BoardId     `json:"id"`
	Name        BoardName   `json:"name"`
	AccessLevel AccessLevel `json:"access_level"`
	Members     Members     `json:"members"`
	Messages    MessageIds  `json:"messages"`
}

// UpdateResult reports the outcome of a conditional single-document update.
// Matched counts documents selected by the filter, Modified those actually changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}
