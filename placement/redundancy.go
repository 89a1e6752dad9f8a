package placement

import (
	"sort"
	"strconv"
	"strings"
)

// Permutation maps GridPoint id i to the id of the GridPoint that
// rotates into position i under one symmetric rotation (spec.md §4.7).
// The symmetry package computes these and imports placement for this
// type; placement only consumes them, to filter redundant images, and
// does not import symmetry, so the two packages form no cycle.
type Permutation []int

// Apply returns the cell-id set obtained by rotating ids through perm.
func (perm Permutation) Apply(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = perm[id]
	}
	return out
}

// cellIDKey canonicalizes a set of GridPoint ids into a stable string
// key usable in a seen-set, regardless of input order.
func cellIDKey(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// RedundancyFilter suppresses placements whose orbit, under a set of
// symmetric-rotation permutations, has already been emitted (spec.md
// §4.4). It is applied to exactly one chosen shape's placement list.
type RedundancyFilter struct {
	perms []Permutation
	seen  map[string]bool
}

func NewRedundancyFilter(perms []Permutation) *RedundancyFilter {
	return &RedundancyFilter{perms: perms, seen: make(map[string]bool)}
}

// Keep reports whether pl should be kept, and if so records every
// rotation of pl's cell-id set into the seen-set so later duplicates
// (rotations of this same placement) are suppressed.
//
// Per spec.md §9's open question, the un-rotated (identity) form is
// inserted first and checked for prior membership exactly as emitted —
// not re-normalized — matching the original implementation's observed
// behavior for single-placement orbits.
func (f *RedundancyFilter) Keep(pl *Placement) bool {
	ids := make([]int, len(pl.Cells))
	for i, c := range pl.Cells {
		ids[i] = c.ID
	}
	key := cellIDKey(ids)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	for _, perm := range f.perms {
		f.seen[cellIDKey(perm.Apply(ids))] = true
	}
	return true
}

// FilterShape applies f to every placement of one shape's list in
// place, returning the surviving subset.
func FilterShape(placements []*Placement, f *RedundancyFilter) []*Placement {
	out := placements[:0]
	for _, pl := range placements {
		if f.Keep(pl) {
			out = append(out, pl)
		}
	}
	return out
}
