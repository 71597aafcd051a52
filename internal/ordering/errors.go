package ordering

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

var (
	// ErrNotMember indicates an id that is not an active sibling of the container
	ErrNotMember = errors.New("item is not an active sibling")

	// ErrAlreadyMember indicates an id that is already an active sibling
	ErrAlreadyMember = errors.New("item is already an active sibling")

	// ErrNegativeOrder indicates a target order below zero
	ErrNegativeOrder = errors.New("target order cannot be negative")

	// ErrNotDense indicates orders that are not exactly 0..N-1
	ErrNotDense = errors.New("sibling orders are not dense")
)

// MembershipError reports which id failed a membership precondition.
type MembershipError[ID comparable] struct {
	ID  ID
	err error
}

func (e *MembershipError[ID]) Error() string {
	return fmt.Sprintf("%v: %v", e.err, e.ID)
}

func (e *MembershipError[ID]) Unwrap() error {
	return e.err
}

// ReferenceError is returned when a submitted reorder names ids that are not
// members of the container, or names a member more than once.
type ReferenceError[ID comparable] struct {
	Unknown    []ID
	Duplicates []ID
}

func (e *ReferenceError[ID]) Error() string {
	switch {
	case len(e.Unknown) > 0 && len(e.Duplicates) > 0:
		return fmt.Sprintf("%v: unknown %v, duplicated %v", models.ErrInvalidReorderReferences, e.Unknown, e.Duplicates)
	case len(e.Unknown) > 0:
		return fmt.Sprintf("%v: unknown %v", models.ErrInvalidReorderReferences, e.Unknown)
	default:
		return fmt.Sprintf("%v: duplicated %v", models.ErrInvalidReorderReferences, e.Duplicates)
	}
}

// Is returns true if the target error is models.ErrInvalidReorderReferences
func (e *ReferenceError[ID]) Is(target error) bool {
	return target == models.ErrInvalidReorderReferences
}

// IncompleteError is returned when a submitted reorder leaves out members.
type IncompleteError[ID comparable] struct {
	Missing []ID
}

func (e *IncompleteError[ID]) Error() string {
	return fmt.Sprintf("%v: missing %v", models.ErrIncompleteReorder, e.Missing)
}

// Is returns true if the target error is models.ErrIncompleteReorder
func (e *IncompleteError[ID]) Is(target error) bool {
	return target == models.ErrIncompleteReorder
}

// DensityError carries the offending sibling set.
type DensityError[ID comparable] struct {
	Siblings []Sibling[ID]
}

func (e *DensityError[ID]) Error() string {
	return fmt.Sprintf("%v: %v", ErrNotDense, e.Siblings)
}

func (e *DensityError[ID]) Unwrap() error {
	return ErrNotDense
}
