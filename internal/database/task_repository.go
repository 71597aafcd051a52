package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles all task-related database operations.
// Positions are written by the caller; the repo never renumbers siblings.
type TaskRepo struct {
	q Querier
}

const taskSelect = `SELECT t.id, t.column_id, c.board_id, t.title, t.description,
		t.position, t.archived, t.created_at, t.updated_at
	FROM tasks t
	JOIN columns c ON c.id = t.column_id`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.ColumnID, &t.BoardID, &t.Title, &t.Description,
		&t.Order, &t.Archived, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = NullTimeToTime(createdAt)
	t.UpdatedAt = NullTimeToTime(updatedAt)
	return t, nil
}

// InsertTask creates an active task in columnID at the given position
func (r *TaskRepo) InsertTask(ctx context.Context, columnID int, title, description string, position int) (*models.Task, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO tasks (column_id, title, description, position) VALUES (?, ?, ?, ?)`,
		columnID, title, description, position,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read task id: %w", err)
	}

	return r.GetTask(ctx, int(id))
}

// GetTask retrieves a task by id regardless of owner or archived state
func (r *TaskRepo) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	t, err := scanTask(r.q.QueryRowContext(ctx, taskSelect+` WHERE t.id = ?`, taskID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError(models.KindTask, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", taskID, err)
	}
	return t, nil
}

// ListTasksByColumn returns a column's active tasks sorted by position.
// With includeArchived, archived tasks follow the active ones.
func (r *TaskRepo) ListTasksByColumn(ctx context.Context, columnID int, includeArchived bool) ([]*models.Task, error) {
	query := taskSelect + ` WHERE t.column_id = ? AND t.archived = 0 ORDER BY t.position, t.id`
	if includeArchived {
		query = taskSelect + ` WHERE t.column_id = ? ORDER BY t.archived, t.position, t.id`
	}

	rows, err := r.q.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for column: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}
	return tasks, nil
}

// SetTaskArchived flips a task in or out of the active set. The caller is
// responsible for the position bookkeeping.
func (r *TaskRepo) SetTaskArchived(ctx context.Context, taskID int, archived bool) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET archived = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		archived, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", taskID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(models.KindTask, taskID)
	}
	return nil
}

// DeleteTask deletes a task row. Sibling positions are left for the caller
// to compact.
func (r *TaskRepo) DeleteTask(ctx context.Context, taskID int) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(models.KindTask, taskID)
	}
	return nil
}
