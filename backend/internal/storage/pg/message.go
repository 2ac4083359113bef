package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	"github.com/lib/pq"
)

const messageColumns = "id, text, image, owner, created_at, modified_at"

func (s *Storage) CreateMessage(ctx context.Context, data domain.MessageCreationData, at time.Time) (*domain.Message, error) {
	msg := &domain.Message{
		Id:         uuid.NewString(),
		Text:       data.Text,
		Image:      data.Image,
		Owner:      data.Owner,
		CreatedAt:  at,
		ModifiedAt: at,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages("+messageColumns+") VALUES($1, $2, $3, $4, $5, $6)",
		msg.Id, msg.Text, msg.Image, ownerArg(msg.Owner), msg.CreatedAt, msg.ModifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

func (s *Storage) GetMessage(ctx context.Context, id domain.MessageId) (*domain.Message, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = $1", id)
	msg, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.NotFound("Message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select message %s: %w", id, err)
	}
	return msg, nil
}

func (s *Storage) GetMessages(ctx context.Context, ids []domain.MessageId) ([]domain.Message, error) {
	if len(ids) == 0 {
		return []domain.Message{}, nil
	}
	rows, err := s.db.QueryContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, len(ids))
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (s *Storage) UpdateMessage(ctx context.Context, id domain.MessageId, text domain.MsgText, image domain.ImageRef, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE messages SET text = $2, image = $3, modified_at = $4 WHERE id = $1", id, text, image, at,
	)
	if err != nil {
		return fmt.Errorf("update message %s: %w", id, err)
	}
	return notFoundIfNone(res, "Message", id)
}

func (s *Storage) DeleteMessage(ctx context.Context, id domain.MessageId) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return notFoundIfNone(res, "Message", id)
}

func notFoundIfNone(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internal_errors.NotFound(resource, id)
	}
	return nil
}

func ownerArg(owner *domain.UserId) sql.NullString {
	if owner == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *owner, Valid: true}
}

func scanMessage(row scanner) (*domain.Message, error) {
	var msg domain.Message
	var owner sql.NullString
	if err := row.Scan(&msg.Id, &msg.Text, &msg.Image, &owner, &msg.CreatedAt, &msg.ModifiedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		msg.Owner = &owner.String
	}
	msg.CreatedAt = msg.CreatedAt.UTC()
	msg.ModifiedAt = msg.ModifiedAt.UTC()
	return &msg, nil
}
