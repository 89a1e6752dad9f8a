// Package dedup implements the solution-level rotational deduplication
// filter (spec.md §4.10): after every complete placement, normalise
// the piece-id state vector, check it against a seen-set, and on a
// fresh solution insert every rotation of it (under the puzzle's
// symmetric-rotation permutations) so later orbit members are dropped.
//
// The seen-set's per-entry width is a type parameter rather than a
// compile-time macro (spec.md §4.10 "compile-time selectable"
// piece-id width) — instantiate Filter with uint8, uint16, or uint32
// depending on how many distinct piece ids a puzzle can have.
package dedup

import "github.com/bpasanek/puzzlecode/placement"

// StateID is the element width of a normalised state vector.
type StateID interface {
	~uint8 | ~uint16 | ~uint32
}

// Normalize renumbers the nonzero entries of state 1, 2, 3, … in order
// of first appearance, leaving 0 (empty cell) untouched.
func Normalize(state []int) []int {
	mapping := make(map[int]int)
	next := 1
	out := make([]int, len(state))
	for i, v := range state {
		if v == 0 {
			continue
		}
		nv, ok := mapping[v]
		if !ok {
			nv = next
			mapping[v] = nv
			next++
		}
		out[i] = nv
	}
	return out
}

// rotateState applies perm to a full state vector: rotated[i] is the
// value previously at the GridPoint that rotates into position i.
func rotateState(state []int, perm placement.Permutation) []int {
	out := make([]int, len(state))
	for i := range out {
		out[i] = state[perm[i]]
	}
	return out
}

// Filter is the solution-level dedup seen-set, parameterised by the
// piece-id storage width.
type Filter[T StateID] struct {
	perms []placement.Permutation
	seen  map[string]struct{}
}

// NewFilter builds a Filter over the given symmetric-rotation
// permutations (symmetry.Analysis.Permutations — always includes the
// identity rotation, so inserting every rotation automatically inserts
// the solution's own normalised form).
func NewFilter[T StateID](perms []placement.Permutation) *Filter[T] {
	return &Filter[T]{perms: perms, seen: make(map[string]struct{})}
}

// Keep reports whether state is a fresh solution (not a rotation of
// one already seen) and, if so, records every symmetric rotation of
// it so later orbit members report false.
func (f *Filter[T]) Keep(state []int) bool {
	key := f.encode(Normalize(state))
	if _, ok := f.seen[key]; ok {
		return false
	}
	for _, perm := range f.perms {
		rkey := f.encode(Normalize(rotateState(state, perm)))
		f.seen[rkey] = struct{}{}
	}
	return true
}

// Len reports how many distinct state vectors (including rotations)
// have been recorded, for test assertions and memory accounting.
func (f *Filter[T]) Len() int {
	return len(f.seen)
}

func (f *Filter[T]) encode(norm []int) string {
	buf := make([]byte, len(norm)*widthOf[T]())
	w := widthOf[T]()
	for i, v := range norm {
		switch w {
		case 1:
			buf[i] = byte(T(v))
		case 2:
			x := uint16(T(v))
			buf[i*2] = byte(x >> 8)
			buf[i*2+1] = byte(x)
		case 4:
			x := uint32(T(v))
			buf[i*4] = byte(x >> 24)
			buf[i*4+1] = byte(x >> 16)
			buf[i*4+2] = byte(x >> 8)
			buf[i*4+3] = byte(x)
		}
	}
	return string(buf)
}

func widthOf[T StateID]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	default:
		return 4
	}
}
