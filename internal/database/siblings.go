package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/ordering"
)

// SiblingKind describes where one kind of ordered item lives: its table, the
// column pointing at its parent, the parent's table, and which rows count as
// active siblings.
type SiblingKind struct {
	Name        string
	ParentName  string
	table       string
	parentKey   string
	parentTable string
	active      string
}

var (
	// ColumnSiblings are the columns of a board; every column is active
	ColumnSiblings = SiblingKind{
		Name:        models.KindColumn,
		ParentName:  models.KindBoard,
		table:       "columns",
		parentKey:   "board_id",
		parentTable: "boards",
		active:      "1 = 1",
	}

	// TaskSiblings are the non-archived tasks of a column
	TaskSiblings = SiblingKind{
		Name:        models.KindTask,
		ParentName:  models.KindColumn,
		table:       "tasks",
		parentKey:   "column_id",
		parentTable: "columns",
		active:      "archived = 0",
	}
)

// SiblingSet is the active sibling set of one parent as read inside a unit
// of work, together with the parent's order version at read time.
type SiblingSet struct {
	ParentID int
	Version  int
	Siblings []ordering.Sibling[int]
}

// LoadSiblings reads the order version of parentID and the orders of its
// active children. A missing parent is reported as NotFound.
func (u *UnitOfWork) LoadSiblings(ctx context.Context, kind SiblingKind, parentID int) (*SiblingSet, error) {
	set := &SiblingSet{ParentID: parentID}

	err := u.tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT order_version FROM %s WHERE id = ?`, kind.parentTable),
		parentID,
	).Scan(&set.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError(kind.ParentName, parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %d version: %w", kind.ParentName, parentID, err)
	}

	rows, err := u.tx.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, position FROM %s WHERE %s = ? AND %s ORDER BY position, id`,
			kind.table, kind.parentKey, kind.active),
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s siblings: %w", kind.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ordering.Sibling[int]
		if err := rows.Scan(&s.ID, &s.Order); err != nil {
			return nil, fmt.Errorf("scanning %s sibling: %w", kind.Name, err)
		}
		set.Siblings = append(set.Siblings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s siblings: %w", kind.Name, err)
	}

	return set, nil
}

// SaveOrders writes parent and position for every changed sibling. Setting
// the parent lets a moved item land in its destination in the same write.
func (u *UnitOfWork) SaveOrders(ctx context.Context, kind SiblingKind, parentID int, changes []ordering.Sibling[int]) error {
	if len(changes) == 0 {
		return nil
	}

	stmt, err := u.tx.PrepareContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s = ?, position = ? WHERE id = ?`, kind.table, kind.parentKey))
	if err != nil {
		return fmt.Errorf("failed to prepare %s order update: %w", kind.Name, err)
	}
	defer stmt.Close()

	for _, s := range changes {
		if _, err := stmt.ExecContext(ctx, parentID, s.Order, s.ID); err != nil {
			return fmt.Errorf("failed to save order of %s %d: %w", kind.Name, s.ID, err)
		}
	}
	return nil
}

// BumpVersion increments the parent's order version, provided it still
// equals the version read earlier in this unit of work.
func (u *UnitOfWork) BumpVersion(ctx context.Context, kind SiblingKind, parentID, readVersion int) error {
	result, err := u.tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET order_version = order_version + 1 WHERE id = ? AND order_version = ?`,
			kind.parentTable),
		parentID, readVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to bump %s %d version: %w", kind.ParentName, parentID, err)
	}

	ok, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	var actual int
	err = u.tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT order_version FROM %s WHERE id = ?`, kind.parentTable),
		parentID,
	).Scan(&actual)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewNotFoundError(kind.ParentName, parentID)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s %d version: %w", kind.ParentName, parentID, err)
	}
	return models.NewConflictError(kind.ParentName, parentID, readVersion, actual)
}

// LoadedContainer pairs an ordering container with the version it was read at.
type LoadedContainer[P, ID ~int] struct {
	*ordering.Container[P, ID]
	Version int
}

// LoadContainer loads the active siblings of parent into a typed container.
func LoadContainer[P, ID ~int](ctx context.Context, u *UnitOfWork, kind SiblingKind, parent P) (*LoadedContainer[P, ID], error) {
	set, err := u.LoadSiblings(ctx, kind, int(parent))
	if err != nil {
		return nil, err
	}

	siblings := make([]ordering.Sibling[ID], len(set.Siblings))
	for i, s := range set.Siblings {
		siblings[i] = ordering.Sibling[ID]{ID: ID(s.ID), Order: s.Order}
	}

	return &LoadedContainer[P, ID]{
		Container: ordering.New(parent, siblings),
		Version:   set.Version,
	}, nil
}

// SaveContainer verifies density, persists the changed orders and bumps the
// parent's version. It runs even when nothing was renumbered, since a removal
// of the last sibling still changes the set.
func SaveContainer[P, ID ~int](ctx context.Context, u *UnitOfWork, kind SiblingKind, c *LoadedContainer[P, ID]) error {
	if err := c.CheckDense(); err != nil {
		return fmt.Errorf("refusing to save %s %d: %w", kind.ParentName, int(c.Parent()), err)
	}

	changed := c.Changes()
	changes := make([]ordering.Sibling[int], len(changed))
	for i, s := range changed {
		changes[i] = ordering.Sibling[int]{ID: int(s.ID), Order: s.Order}
	}

	if err := u.SaveOrders(ctx, kind, int(c.Parent()), changes); err != nil {
		return err
	}
	return u.BumpVersion(ctx, kind, int(c.Parent()), c.Version)
}

// CheckExpectedVersion compares a client-supplied version with the loaded one.
// A nil expectation always passes.
func CheckExpectedVersion[P, ID ~int](kind SiblingKind, c *LoadedContainer[P, ID], expected *int) error {
	if expected == nil || *expected == c.Version {
		return nil
	}
	return models.NewConflictError(kind.ParentName, int(c.Parent()), *expected, c.Version)
}
