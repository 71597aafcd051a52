package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 255 characters")
	ErrDescriptionTooLong = errors.New("task description cannot exceed 10000 characters")
	ErrInvalidTaskID      = errors.New("invalid task ID")
	ErrInvalidColumnID    = errors.New("invalid column ID")
	ErrInvalidPosition    = errors.New("invalid position: must be >= 0")
	ErrInvalidVersion     = errors.New("expected version cannot be negative")

	// Business logic errors
	ErrTaskArchived    = errors.New("task is archived")
	ErrTaskNotArchived = errors.New("task is not archived")
)
