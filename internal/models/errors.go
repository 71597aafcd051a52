package models

import (
	"errors"
	"fmt"
)

// Caller-facing failures of ordering operations. None of these leave a
// partial mutation behind.
var (
	// ErrUnauthenticated indicates that no caller identity is available
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrNotFound indicates an entity that does not exist or is owned by someone else
	ErrNotFound = errors.New("not found")

	// ErrInvalidReorderReferences indicates a reorder naming foreign, stale or duplicated ids
	ErrInvalidReorderReferences = errors.New("reorder references invalid items")

	// ErrIncompleteReorder indicates a reorder that leaves out existing items
	ErrIncompleteReorder = errors.New("reorder does not include every item")

	// ErrCrossBoardMove indicates a move between columns of different boards
	ErrCrossBoardMove = errors.New("cannot move a task to another board")

	// ErrConflict indicates that the container changed since the caller read it
	ErrConflict = errors.New("container was modified concurrently")
)

// NotFoundError names the entity that could not be resolved for the caller.
// Absent and foreign-owned entities produce the same error.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is returns true if the target error is ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind string, id int) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports a stale container version
type ConflictError struct {
	Kind     string
	ID       int
	Expected int
	Actual   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently (expected version %d, found %d)",
		e.Kind, e.ID, e.Expected, e.Actual)
}

// Is returns true if the target error is ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(kind string, id, expected, actual int) *ConflictError {
	return &ConflictError{Kind: kind, ID: id, Expected: expected, Actual: actual}
}

// CrossBoardMoveError reports the two boards involved in a rejected move
type CrossBoardMoveError struct {
	TaskID        int
	SourceBoardID int
	TargetBoardID int
}

func (e *CrossBoardMoveError) Error() string {
	return fmt.Sprintf("cannot move task %d from board %d to board %d",
		e.TaskID, e.SourceBoardID, e.TargetBoardID)
}

// Is returns true if the target error is ErrCrossBoardMove
func (e *CrossBoardMoveError) Is(target error) bool {
	return target == ErrCrossBoardMove
}
