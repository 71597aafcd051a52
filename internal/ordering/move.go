package ordering

// Move relocates id from src to dst at targetOrder and returns the order it
// was placed at. src and dst may be the same container.
//
// The move is two one-sided passes: remove-and-compact on the source leaves
// it dense for N-1 items, then InsertAt opens exactly one slot in the
// destination. Preconditions are checked first so a failed move leaves both
// containers untouched.
func Move[P, ID comparable](src, dst *Container[P, ID], id ID, targetOrder int) (int, error) {
	if targetOrder < 0 {
		return 0, ErrNegativeOrder
	}
	if !src.Has(id) {
		return 0, &MembershipError[ID]{ID: id, err: ErrNotMember}
	}
	if dst != src && dst.Has(id) {
		return 0, &MembershipError[ID]{ID: id, err: ErrAlreadyMember}
	}

	if err := src.RemoveAndCompact(id); err != nil {
		return 0, err
	}
	return dst.InsertAt(id, targetOrder)
}
