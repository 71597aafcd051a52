// Package scope resolves entities on behalf of a caller.
//
// Every lookup joins up the ownership chain (task -> column -> board -> owner)
// and fails closed: an entity owned by another user is reported exactly like
// one that does not exist.
package scope

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Resolver loads entities visible to callerID using q, which is normally the
// transaction of the current unit of work.
type Resolver interface {
	ResolveBoard(ctx context.Context, q database.Querier, callerID, boardID int) (*models.Board, error)
	ResolveColumn(ctx context.Context, q database.Querier, callerID, columnID int) (*models.Column, error)
	ResolveTask(ctx context.Context, q database.Querier, callerID, taskID int) (*models.Task, error)
}

// SQLResolver is the default Resolver
type SQLResolver struct{}

// NewSQLResolver creates a resolver backed by the tablero schema
func NewSQLResolver() *SQLResolver {
	return &SQLResolver{}
}

// ResolveBoard returns the board if callerID owns it
func (SQLResolver) ResolveBoard(ctx context.Context, q database.Querier, callerID, boardID int) (*models.Board, error) {
	b := &models.Board{}
	var createdAt sql.NullTime
	err := q.QueryRowContext(ctx,
		`SELECT id, owner_id, name, order_version, created_at
		 FROM boards
		 WHERE id = ? AND owner_id = ?`,
		boardID, callerID,
	).Scan(&b.ID, &b.OwnerID, &b.Name, &b.OrderVersion, &createdAt)
	if err != nil {
		return nil, notFound(err, models.KindBoard, boardID)
	}
	b.CreatedAt = database.NullTimeToTime(createdAt)
	return b, nil
}

// ResolveColumn returns the column if callerID owns its board
func (SQLResolver) ResolveColumn(ctx context.Context, q database.Querier, callerID, columnID int) (*models.Column, error) {
	c := &models.Column{}
	var createdAt sql.NullTime
	err := q.QueryRowContext(ctx,
		`SELECT c.id, c.board_id, c.name, c.position, c.order_version, c.created_at
		 FROM columns c
		 JOIN boards b ON b.id = c.board_id
		 WHERE c.id = ? AND b.owner_id = ?`,
		columnID, callerID,
	).Scan(&c.ID, &c.BoardID, &c.Name, &c.Order, &c.OrderVersion, &createdAt)
	if err != nil {
		return nil, notFound(err, models.KindColumn, columnID)
	}
	c.CreatedAt = database.NullTimeToTime(createdAt)
	return c, nil
}

// ResolveTask returns the task, archived or not, if callerID owns its board
func (SQLResolver) ResolveTask(ctx context.Context, q database.Querier, callerID, taskID int) (*models.Task, error) {
	t := &models.Task{}
	var createdAt, updatedAt sql.NullTime
	err := q.QueryRowContext(ctx,
		`SELECT t.id, t.column_id, c.board_id, t.title, t.description,
			t.position, t.archived, t.created_at, t.updated_at
		 FROM tasks t
		 JOIN columns c ON c.id = t.column_id
		 JOIN boards b ON b.id = c.board_id
		 WHERE t.id = ? AND b.owner_id = ?`,
		taskID, callerID,
	).Scan(
		&t.ID, &t.ColumnID, &t.BoardID, &t.Title, &t.Description,
		&t.Order, &t.Archived, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFound(err, models.KindTask, taskID)
	}
	t.CreatedAt = database.NullTimeToTime(createdAt)
	t.UpdatedAt = database.NullTimeToTime(updatedAt)
	return t, nil
}

func notFound(err error, kind string, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewNotFoundError(kind, id)
	}
	return fmt.Errorf("failed to resolve %s %d: %w", kind, id, err)
}
