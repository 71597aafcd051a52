package models

// ============================================================================
// NAME LIMITS
// ============================================================================

const (
	// MaxBoardNameLength is the longest accepted board name
	MaxBoardNameLength = 100

	// MaxColumnNameLength is the longest accepted column name
	MaxColumnNameLength = 50

	// MaxTaskTitleLength is the longest accepted task title
	MaxTaskTitleLength = 255

	// MaxTaskDescriptionLength is the longest accepted task description
	MaxTaskDescriptionLength = 10000
)

// ============================================================================
// ENTITY KINDS
// ============================================================================

// Entity kind names used in errors and events
const (
	KindBoard  = "board"
	KindColumn = "column"
	KindTask   = "task"
)
