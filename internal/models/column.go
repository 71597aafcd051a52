package models

import "time"

// Column represents a kanban board column (e.g., "Todo", "In Progress", "Done")
// Columns are ordered within their board by a dense zero-based Order
type Column struct {
	ID           int
	BoardID      int
	Name         string
	Order        int // Position among the board's columns
	OrderVersion int // Bumped on every change to the order of its tasks
	CreatedAt    time.Time
}
