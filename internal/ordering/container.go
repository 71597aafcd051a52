// Package ordering keeps the sibling sets of a parent densely ordered.
//
// A Container holds the active siblings of one parent (the columns of a board,
// the non-archived tasks of a column) and exposes the mutations that preserve
// the invariant: the orders of N siblings are exactly 0..N-1. Containers are
// plain values loaded from and saved to storage by the caller; nothing in this
// package touches the database.
package ordering

import (
	"slices"
)

// Sibling is one ordered item as loaded from storage.
type Sibling[ID comparable] struct {
	ID    ID
	Order int
}

// Container is the active sibling set of a single parent.
type Container[P, ID comparable] struct {
	parent P
	ids    []ID       // membership, in load/insert sequence (tie-break for sorting)
	orders map[ID]int // current order of every member
	loaded map[ID]int // orders as loaded, used to compute Changes
}

// New builds a container for parent from the loaded siblings.
func New[P, ID comparable](parent P, siblings []Sibling[ID]) *Container[P, ID] {
	c := &Container[P, ID]{
		parent: parent,
		ids:    make([]ID, 0, len(siblings)),
		orders: make(map[ID]int, len(siblings)),
		loaded: make(map[ID]int, len(siblings)),
	}
	for _, s := range siblings {
		if _, dup := c.orders[s.ID]; dup {
			continue
		}
		c.ids = append(c.ids, s.ID)
		c.orders[s.ID] = s.Order
		c.loaded[s.ID] = s.Order
	}
	return c
}

// Parent returns the id of the parent that owns this sibling set.
func (c *Container[P, ID]) Parent() P {
	return c.parent
}

// Len returns the number of active siblings.
func (c *Container[P, ID]) Len() int {
	return len(c.ids)
}

// Has reports whether id is an active sibling.
func (c *Container[P, ID]) Has(id ID) bool {
	_, ok := c.orders[id]
	return ok
}

// Order returns the current order of id.
func (c *Container[P, ID]) Order(id ID) (int, bool) {
	o, ok := c.orders[id]
	return o, ok
}

// IDs returns the member ids sorted by order.
func (c *Container[P, ID]) IDs() []ID {
	out := slices.Clone(c.ids)
	slices.SortStableFunc(out, func(a, b ID) int {
		return c.orders[a] - c.orders[b]
	})
	return out
}

// Siblings returns every member with its current order, sorted by order.
func (c *Container[P, ID]) Siblings() []Sibling[ID] {
	ids := c.IDs()
	out := make([]Sibling[ID], len(ids))
	for i, id := range ids {
		out[i] = Sibling[ID]{ID: id, Order: c.orders[id]}
	}
	return out
}

// Changes returns the members whose order differs from what was loaded,
// including members that were appended or inserted after loading.
func (c *Container[P, ID]) Changes() []Sibling[ID] {
	var out []Sibling[ID]
	for _, s := range c.Siblings() {
		if prev, ok := c.loaded[s.ID]; ok && prev == s.Order {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Append places id after the current maximum order, or at 0 for an empty set.
// Existing siblings are not renumbered.
func (c *Container[P, ID]) Append(id ID) (int, error) {
	if c.Has(id) {
		return 0, &MembershipError[ID]{ID: id, err: ErrAlreadyMember}
	}
	order := c.nextOrder()
	c.ids = append(c.ids, id)
	c.orders[id] = order
	return order, nil
}

// RemoveAndCompact drops id from the set and closes the gap it leaves by
// decrementing every sibling ordered after it. Calling it twice for the same
// removal is an error, not a no-op.
func (c *Container[P, ID]) RemoveAndCompact(id ID) error {
	removed, ok := c.orders[id]
	if !ok {
		return &MembershipError[ID]{ID: id, err: ErrNotMember}
	}
	delete(c.orders, id)
	c.ids = slices.DeleteFunc(c.ids, func(other ID) bool { return other == id })
	for _, other := range c.ids {
		if c.orders[other] > removed {
			c.orders[other]--
		}
	}
	return nil
}

// ReplaceOrder assigns order = index for every id in seq. The sequence must be
// a permutation of the current members; otherwise nothing changes.
func (c *Container[P, ID]) ReplaceOrder(seq []ID) error {
	if err := ValidateReorder(c.ids, seq); err != nil {
		return err
	}
	for i, id := range seq {
		c.orders[id] = i
	}
	return nil
}

// InsertAt opens a slot at order by shifting every sibling at or after it,
// then places id there. Orders at or past the end are treated as an append.
// Negative orders insert at the front. It returns the order id ended up with.
func (c *Container[P, ID]) InsertAt(id ID, order int) (int, error) {
	if c.Has(id) {
		return 0, &MembershipError[ID]{ID: id, err: ErrAlreadyMember}
	}
	if order < 0 {
		order = 0
	}
	if order >= c.Len() {
		order = c.nextOrder()
	}
	for _, other := range c.ids {
		if c.orders[other] >= order {
			c.orders[other]++
		}
	}
	c.ids = append(c.ids, id)
	c.orders[id] = order
	return order, nil
}

// CheckDense verifies that the orders are exactly 0..Len()-1.
func (c *Container[P, ID]) CheckDense() error {
	seen := make([]bool, len(c.ids))
	for _, id := range c.ids {
		o := c.orders[id]
		if o < 0 || o >= len(seen) || seen[o] {
			return &DensityError[ID]{Siblings: c.Siblings()}
		}
		seen[o] = true
	}
	return nil
}

func (c *Container[P, ID]) nextOrder() int {
	if len(c.ids) == 0 {
		return 0
	}
	highest := c.orders[c.ids[0]]
	for _, id := range c.ids[1:] {
		highest = max(highest, c.orders[id])
	}
	return highest + 1
}
