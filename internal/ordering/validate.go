package ordering

// ValidateReorder checks that submitted is a permutation of current: no
// foreign ids, no duplicates, nothing missing. It never mutates its inputs.
func ValidateReorder[ID comparable](current, submitted []ID) error {
	members := make(map[ID]struct{}, len(current))
	for _, id := range current {
		members[id] = struct{}{}
	}

	var unknown, duplicates []ID
	seen := make(map[ID]struct{}, len(submitted))
	for _, id := range submitted {
		if _, ok := members[id]; !ok {
			unknown = append(unknown, id)
			continue
		}
		if _, dup := seen[id]; dup {
			duplicates = append(duplicates, id)
			continue
		}
		seen[id] = struct{}{}
	}
	if len(unknown) > 0 || len(duplicates) > 0 {
		return &ReferenceError[ID]{Unknown: unknown, Duplicates: duplicates}
	}

	var missing []ID
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError[ID]{Missing: missing}
	}
	return nil
}
