// Package captures implements the capture slot table of spec.md §3 and §5:
// an ordered mapping from 1-based group index to the captured substring of
// the current input, mutable during a single match attempt and restorable
// at backtrack points.
//
// Grounded on coregx-coregex's nfa/slot_table.go: a flat slice with a
// sentinel for "unset", sized once at allocation. That table is indexed by
// (state, slot) because it backs an NFA simulation; ours is indexed by group
// alone, since a recursive-descent matcher has no states to index by — only
// the static group count from a pre-pass over the pattern
// (internal/parser.CountGroups).
package captures

// Table holds one optional string per capture group, 1-indexed (slot 0 is
// unused so group numbers can index directly).
type Table struct {
	slots []*string
}

// NewTable allocates a table for a pattern with n capture groups, all slots
// unset.
func NewTable(n int) *Table {
	return &Table{slots: make([]*string, n+1)}
}

// Get returns the captured text for group and whether it is set.
func (t *Table) Get(group int) (string, bool) {
	if group < 0 || group >= len(t.slots) || t.slots[group] == nil {
		return "", false
	}
	return *t.slots[group], true
}

// Set records the text captured by group on the current path.
func (t *Table) Set(group int, value string) {
	v := value
	t.slots[group] = &v
}

// Snapshot returns a shallow copy of the current slot values, suitable for
// Restore. Snapshot/Restore must bracket every point spec.md §5 names as a
// backtrack point: between alternatives within a group, between iterations
// of a '+' on a group, and when a '?' on a group falls through to its
// zero-match branch.
func (t *Table) Snapshot() []*string {
	cp := make([]*string, len(t.slots))
	copy(cp, t.slots)
	return cp
}

// Restore replaces the table's contents with a previously taken Snapshot.
func (t *Table) Restore(snapshot []*string) {
	copy(t.slots, snapshot)
}
