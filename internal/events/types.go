package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventOrderChanged is published after a committed change to a sibling set
	EventOrderChanged EventType = "order_changed"

	// EventBoardDeleted is published after a board and its contents are removed
	EventBoardDeleted EventType = "board_deleted"
)

// Event describes a committed change to the ordering of one container
type Event struct {
	Type        EventType `json:"type"`
	BoardID     int       `json:"board_id"`     // For filtering - which board was modified
	ContainerID int       `json:"container_id"` // Board id for columns, column id for tasks
	Kind        string    `json:"kind"`         // Kind of the reordered items
	OpID        string    `json:"op_id"`        // Unit of work that produced the change
	Timestamp   time.Time `json:"timestamp"`
	SequenceID  int64     `json:"sequence_id"` // Monotonically increasing, assigned by the bus
}
