package piece

import (
	"github.com/kelindar/bitmap"

	"github.com/bpasanek/puzzlecode/geometry"
)

// Shape is the equivalence class of a Piece under rotation: every
// NamedPiece bound to it is congruent (up to rotation and translation)
// to every other. Shape also tracks the subset of the 24 rotations that
// yield geometrically distinct orientations of this shape, the id of
// its mirror shape (for one-sided mode), and how many mobile copies
// remain to be placed — the column multiplicity the DLX matrix reads.
type Shape struct {
	ID int

	Canonical Piece // one representative, rotation-normalized to the identity orientation
	Pieces    []*NamedPiece

	DistinctRotations []geometry.Rotation
	MirrorID          int // 0 if this shape has no mirror (it is self-mirrored or one-sided has no pair)

	Remaining int // mobile copies not yet placed; the DLX column multiplicity
}

// NewShape builds a Shape from its canonical Piece and computes the
// subset of rotations producing geometrically distinct orientations by
// brute-force dedup across the allowed rotations (all 24, or the 4
// z-axis rotations in one-sided mode).
func NewShape(id int, canonical Piece, allowed []geometry.Rotation) *Shape {
	seen := make([]Piece, 0, len(allowed))
	distinct := make([]geometry.Rotation, 0, len(allowed))
	for _, r := range allowed {
		rotated := canonical.Rotated(r)
		dup := false
		for _, s := range seen {
			if rotated.CongruentTo(s) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, rotated)
			distinct = append(distinct, r)
		}
	}
	return &Shape{
		ID:                id,
		Canonical:         canonical,
		DistinctRotations: distinct,
	}
}

// MobileCount returns how many NamedPieces bound to this shape are
// mobile (as opposed to stationary).
func (s *Shape) MobileCount() int {
	n := 0
	for _, p := range s.Pieces {
		if p.Mobility == Mobile {
			n++
		}
	}
	return n
}

// NextUnclaimed returns the lowest-id mobile NamedPiece whose instance
// has not yet been bound to a placement; used by solver.bindPlacements
// (spec.md §4.6 "Image/piece binding is deferred") to assign a specific
// piece name to an anonymous placed image, walking in id order. claimed
// is a per-solution scratch bitset (one bit per dense NamedPiece id,
// spec.md §3 "Ids are dense from 1") rather than a map, since the
// caller rebuilds and discards it once per emitted solution.
func (s *Shape) NextUnclaimed(claimed *bitmap.Bitmap) *NamedPiece {
	var best *NamedPiece
	for _, p := range s.Pieces {
		if p.Mobility != Mobile || claimed.Contains(uint32(p.ID)) {
			continue
		}
		if best == nil || p.ID < best.ID {
			best = p
		}
	}
	return best
}
