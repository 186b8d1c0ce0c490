package catalog

// Shift is the sibling adjustment that makes room for an entry moving to a
// new sort order. Siblings whose sort_order falls in [Low, High] move by
// Delta; the moved entry itself is excluded by id.
type Shift struct {
	Low   int
	High  int
	Delta int
}

// NextPosition returns the sort order for a new entry appended to a scope
// that currently holds count entries. Correct while the scope's sort orders
// are contiguous; after deletions the scope can accumulate gaps and an
// append can land on a surviving value.
func NextPosition(count int) int {
	return count
}

// ShiftFor computes the sibling shift for moving an entry from oldPos to
// newPos. ok is false when the move is a no-op and no statement should run.
func ShiftFor(oldPos, newPos int) (Shift, bool) {
	switch {
	case newPos > oldPos:
		// Siblings in (oldPos, newPos] slide down one
		return Shift{Low: oldPos + 1, High: newPos, Delta: -1}, true
	case newPos < oldPos:
		// Siblings in [newPos, oldPos) slide up one
		return Shift{Low: newPos, High: oldPos - 1, Delta: 1}, true
	default:
		return Shift{}, false
	}
}

// InBounds reports whether newPos is a legal target for a scope of size
// size. Only consulted when strict bounds are configured on.
func InBounds(newPos, size int) bool {
	return newPos >= 0 && newPos < size
}
