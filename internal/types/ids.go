package types

// Typed IDs keep the two container kinds apart: a board's column set is an
// ordering.Container[BoardID, ColumnID], a column's task set is an
// ordering.Container[ColumnID, TaskID]. Mixing them up fails to compile.

// UserID identifies the tenant that owns boards
type UserID int

// BoardID identifies a board
type BoardID int

// ColumnID identifies a column within a board
type ColumnID int

// TaskID identifies a task within a column
type TaskID int

// ToInt converts type alias back to int for storage and models
func (id UserID) ToInt() int {
	return int(id)
}

func (id BoardID) ToInt() int {
	return int(id)
}

func (id ColumnID) ToInt() int {
	return int(id)
}

func (id TaskID) ToInt() int {
	return int(id)
}

// ColumnIDs converts a slice of ints into typed column ids
func ColumnIDs(ids []int) []ColumnID {
	out := make([]ColumnID, len(ids))
	for i, id := range ids {
		out[i] = ColumnID(id)
	}
	return out
}

// TaskIDs converts a slice of ints into typed task ids
func TaskIDs(ids []int) []TaskID {
	out := make([]TaskID, len(ids))
	for i, id := range ids {
		out[i] = TaskID(id)
	}
	return out
}
