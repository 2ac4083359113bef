package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/shared/domain"
	internal_errors "github.com/kudosboards/kudos/shared/errors"
	sharedpg "github.com/kudosboards/kudos/shared/storage/pg"
	"github.com/lib/pq"
)

const boardColumns = "id, name, access_level, members, messages"

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO boards(id, name, access_level, members, messages) VALUES($1, $2, $3, $4, '{}')",
		id, data.Name, string(data.AccessLevel), pq.Array([]string{data.Creator}),
	)
	if err != nil {
		return "", fmt.Errorf("insert board: %w", err)
	}
	return id, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+boardColumns+" FROM boards WHERE id = $1", id)
	board, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.NotFound("Board", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select board %s: %w", id, err)
	}
	return board, nil
}

func (s *Storage) ListBoardsByMember(ctx context.Context, userId domain.UserId) ([]domain.Board, error) {
	return s.listBoards(ctx, "SELECT "+boardColumns+" FROM boards WHERE members @> ARRAY[$1]::text[] ORDER BY created_at, id", userId)
}

func (s *Storage) ListBoardsByAccess(ctx context.Context, level domain.AccessLevel) ([]domain.Board, error) {
	return s.listBoards(ctx, "SELECT "+boardColumns+" FROM boards WHERE access_level = $1 ORDER BY created_at, id", string(level))
}

func (s *Storage) listBoards(ctx context.Context, query string, arg any) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, *board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}
	return boards, nil
}

func (s *Storage) AppendMember(ctx context.Context, boardId domain.BoardId, userId domain.UserId) (domain.UpdateResult, error) {
	return s.appendTo(ctx, "members", boardId, userId)
}

func (s *Storage) AppendMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	return s.appendTo(ctx, "messages", boardId, messageId)
}

// appendTo always changes the matched row, so matched == modified.
func (s *Storage) appendTo(ctx context.Context, column string, boardId domain.BoardId, value string) (domain.UpdateResult, error) {
	column = pq.QuoteIdentifier(column)
	query := fmt.Sprintf("UPDATE boards SET %s = array_append(%s, $2) WHERE id = $1", column, column)
	res, err := s.db.ExecContext(ctx, query, boardId, value)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("append to board %s: %w", boardId, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return domain.UpdateResult{Matched: n, Modified: n}, nil
}

// PullMessage removes every occurrence of messageId from the board's list.
// The row is locked so matched and modified are reported for the same version.
func (s *Storage) PullMessage(ctx context.Context, boardId domain.BoardId, messageId domain.MessageId) (domain.UpdateResult, error) {
	var result domain.UpdateResult
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var linked bool
		err := tx.QueryRowContext(ctx,
			"SELECT $2 = ANY(messages) FROM boards WHERE id = $1 FOR UPDATE", boardId, messageId,
		).Scan(&linked)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		result.Matched = 1
		if !linked {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE boards SET messages = array_remove(messages, $2) WHERE id = $1", boardId, messageId,
		); err != nil {
			return err
		}
		result.Modified = 1
		return nil
	})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("pull message %s from board %s: %w", messageId, boardId, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(row scanner) (*domain.Board, error) {
	var board domain.Board
	var level string
	board.Members = domain.Members{}
	board.Messages = domain.MessageIds{}
	if err := row.Scan(&board.Id, &board.Name, &level, pq.Array(&board.Members), pq.Array(&board.Messages)); err != nil {
		return nil, err
	}
	board.AccessLevel = domain.AccessLevel(level)
	return &board, nil
}
