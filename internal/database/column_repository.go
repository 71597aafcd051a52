package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ColumnRepo handles all column-related database operations.
// Positions are written by the caller; the repo never renumbers siblings.
type ColumnRepo struct {
	q Querier
}

const columnColumns = `id, board_id, name, position, order_version, created_at`

func scanColumn(row interface{ Scan(...any) error }) (*models.Column, error) {
	c := &models.Column{}
	var createdAt sql.NullTime
	if err := row.Scan(&c.ID, &c.BoardID, &c.Name, &c.Order, &c.OrderVersion, &createdAt); err != nil {
		return nil, err
	}
	c.CreatedAt = NullTimeToTime(createdAt)
	return c, nil
}

// InsertColumn creates a column on boardID at the given position
func (r *ColumnRepo) InsertColumn(ctx context.Context, boardID int, name string, position int) (*models.Column, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO columns (board_id, name, position) VALUES (?, ?, ?)`,
		boardID, name, position,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read column id: %w", err)
	}

	return r.GetColumn(ctx, int(id))
}

// GetColumn retrieves a column by id regardless of owner
func (r *ColumnRepo) GetColumn(ctx context.Context, columnID int) (*models.Column, error) {
	c, err := scanColumn(r.q.QueryRowContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE id = ?`, columnID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError(models.KindColumn, columnID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column %d: %w", columnID, err)
	}
	return c, nil
}

// ListColumnsByBoard returns a board's columns sorted by position
func (r *ColumnRepo) ListColumnsByBoard(ctx context.Context, boardID int) ([]*models.Column, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE board_id = ? ORDER BY position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying columns for board: %w", err)
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// RenameColumn changes a column's name
func (r *ColumnRepo) RenameColumn(ctx context.Context, columnID int, name string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE columns SET name = ? WHERE id = ?`, name, columnID)
	if err != nil {
		return fmt.Errorf("failed to rename column %d: %w", columnID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(models.KindColumn, columnID)
	}
	return nil
}

// DeleteColumn deletes a column; its tasks cascade. Sibling positions are
// left for the caller to compact.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, columnID int) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, columnID)
	if err != nil {
		return fmt.Errorf("failed to delete column %d: %w", columnID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(models.KindColumn, columnID)
	}
	return nil
}
