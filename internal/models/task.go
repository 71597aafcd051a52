package models

import "time"

// Task represents a single card in a column
type Task struct {
	ID          int
	ColumnID    int
	BoardID     int // Denormalized from the column for ownership checks
	Title       string
	Description string
	Order       int  // Position among the column's non-archived tasks
	Archived    bool // Archived tasks are outside the ordering domain
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
