package board

import "errors"

// Domain errors for board service
var (
	// Validation errors
	ErrEmptyName       = errors.New("board name cannot be empty")
	ErrNameTooLong     = errors.New("board name cannot exceed 100 characters")
	ErrColumnNameLimit = errors.New("column name cannot exceed 50 characters")
	ErrEmptyColumnName = errors.New("column name cannot be empty")
	ErrInvalidBoardID  = errors.New("invalid board ID")
)
