package models

import "time"

// Board is the top-level container owned by a single user.
// It holds an ordered list of columns.
type Board struct {
	ID           int
	OwnerID      int
	Name         string
	OrderVersion int // Bumped on every change to the order of its columns
	CreatedAt    time.Time
}
