package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
)

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, "SELECT id, username FROM users WHERE id = $1", id).Scan(&user.Id, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.NotFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select user %s: %w", id, err)
	}
	return &user, nil
}

// SaveUser registers the user or renames an existing one.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, username) VALUES($1, $2) ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username",
		user.Id, user.Username,
	)
	if err != nil {
		return fmt.Errorf("save user %s: %w", user.Id, err)
	}
	return nil
}
