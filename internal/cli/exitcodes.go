package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/ordering"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or malformed flag values.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Boards, columns and tasks owned by another user are reported the same way.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Corrupted stored orders reported by board check.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Bad names, incomplete or invalid reorders, cross-board moves,
	// archive/restore preconditions.
	ExitValidation = 5

	// ExitConflict indicates the container changed since the caller read it.
	// Re-read the list and retry with the new version.
	ExitConflict = 6

	// ExitUnauthenticated indicates no caller identity could be established.
	ExitUnauthenticated = 7
)

// CommandError carries the process exit code for a failed command.
// main unwraps it and exits with Code.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError wraps err as an ExitUsage failure
func UsageError(format string, args ...any) error {
	return &CommandError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// ExitCode returns the exit code a command should terminate with for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	_, code := Classify(err)
	return code
}

var validationErrors = []error{
	models.ErrInvalidReorderReferences,
	models.ErrIncompleteReorder,
	models.ErrCrossBoardMove,
	ordering.ErrNegativeOrder,

	boardservice.ErrEmptyName,
	boardservice.ErrNameTooLong,
	boardservice.ErrEmptyColumnName,
	boardservice.ErrColumnNameLimit,
	boardservice.ErrInvalidBoardID,

	columnservice.ErrEmptyName,
	columnservice.ErrNameTooLong,
	columnservice.ErrInvalidColumnID,
	columnservice.ErrInvalidBoardID,
	columnservice.ErrInvalidVersion,

	taskservice.ErrEmptyTitle,
	taskservice.ErrTitleTooLong,
	taskservice.ErrDescriptionTooLong,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidColumnID,
	taskservice.ErrInvalidPosition,
	taskservice.ErrInvalidVersion,
	taskservice.ErrTaskArchived,
	taskservice.ErrTaskNotArchived,
}

// Classify maps a service error to the machine-readable code printed in JSON
// output and to the process exit code.
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return "UNAUTHENTICATED", ExitUnauthenticated
	case errors.Is(err, models.ErrNotFound):
		var nf *models.NotFoundError
		if errors.As(err, &nf) {
			return fmt.Sprintf("%s_NOT_FOUND", strings.ToUpper(nf.Kind)), ExitNotFound
		}
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrConflict):
		return "VERSION_CONFLICT", ExitConflict
	case errors.Is(err, models.ErrInvalidReorderReferences):
		return "INVALID_REORDER", ExitValidation
	case errors.Is(err, models.ErrIncompleteReorder):
		return "INCOMPLETE_REORDER", ExitValidation
	case errors.Is(err, models.ErrCrossBoardMove):
		return "CROSS_BOARD_MOVE", ExitValidation
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return "VALIDATION_ERROR", ExitValidation
		}
	}
	return "INTERNAL_ERROR", ExitError
}

// suggestionFor returns a hint for the caller, or "" when there is none
func suggestionFor(err error) string {
	switch {
	case errors.Is(err, models.ErrConflict):
		return "List the items again and retry with the current --expected-version"
	case errors.Is(err, models.ErrIncompleteReorder):
		return "Pass every active id exactly once; see the list command for the current order"
	case errors.Is(err, models.ErrCrossBoardMove):
		return "Tasks can only move between columns of the same board"
	case errors.Is(err, models.ErrUnauthenticated):
		return "Set USER or run as a user with a resolvable account name"
	}
	return ""
}
