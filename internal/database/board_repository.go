package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	q Querier
}

const boardColumns = `id, owner_id, name, order_version, created_at`

func scanBoard(row interface{ Scan(...any) error }) (*models.Board, error) {
	b := &models.Board{}
	var createdAt sql.NullTime
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.OrderVersion, &createdAt); err != nil {
		return nil, err
	}
	b.CreatedAt = NullTimeToTime(createdAt)
	return b, nil
}

// CreateBoard inserts a new, empty board owned by ownerID
func (r *BoardRepo) CreateBoard(ctx context.Context, ownerID int, name string) (*models.Board, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO boards (owner_id, name) VALUES (?, ?)`,
		ownerID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read board id: %w", err)
	}

	return r.GetBoard(ctx, int(id))
}

// GetBoard retrieves a board by id regardless of owner
func (r *BoardRepo) GetBoard(ctx context.Context, boardID int) (*models.Board, error) {
	b, err := scanBoard(r.q.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, boardID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError(models.KindBoard, boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board %d: %w", boardID, err)
	}
	return b, nil
}

// ListBoardsByOwner returns the boards owned by ownerID, oldest first
func (r *BoardRepo) ListBoardsByOwner(ctx context.Context, ownerID int) ([]*models.Board, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying boards for owner: %w", err)
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating board rows: %w", err)
	}
	return boards, nil
}

// DeleteBoard deletes a board; its columns and tasks cascade
func (r *BoardRepo) DeleteBoard(ctx context.Context, boardID int) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board %d: %w", boardID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(models.KindBoard, boardID)
	}
	return nil
}
