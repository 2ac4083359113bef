// Package access decides whether a caller may view or change a board.
package access

import (
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
	"github.com/samber/lo"
)

// ResolveRead returns the board if the caller may view it.
//
// PUBLIC and LINK boards are readable by anyone. PRIVATE boards need an
// authenticated member: an anonymous caller gets ErrNotAuthenticated, a
// non-member ErrNotAuthorized. Unknown access levels are never readable.
func ResolveRead(board *domain.Board, caller domain.Caller) (*domain.Board, error) {
	switch board.AccessLevel {
	case domain.AccessPublic, domain.AccessLink:
		return board, nil
	case domain.AccessPrivate:
		user, ok := caller.User()
		if !ok {
			return nil, errors.ErrNotAuthenticated
		}
		if !CanWrite(board, user) {
			return nil, errors.ErrNotAuthorized
		}
		return board, nil
	default:
		return nil, errors.ErrNotAuthorized
	}
}

// CanWrite reports whether user is a member of board.
func CanWrite(board *domain.Board, user domain.User) bool {
	return lo.Contains(board.Members, user.Id)
}
